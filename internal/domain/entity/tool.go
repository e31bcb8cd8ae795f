package entity

type ToolName string

const (
	ToolNavigate           ToolName = "navigate"
	ToolClick              ToolName = "click"
	ToolInputText          ToolName = "input_text"
	ToolSafeClick          ToolName = "safe_click"
	ToolSafeInputText      ToolName = "safe_input_text"
	ToolPressKey           ToolName = "press_key"
	ToolScroll             ToolName = "scroll"
	ToolWaitForElement     ToolName = "wait_for_element"
	ToolWaitForPageLoad    ToolName = "wait_for_page_load"
	ToolCheckElementExists ToolName = "check_element_exists"
	ToolFindElementsByText ToolName = "find_elements_by_text"
	ToolGetPageInfo        ToolName = "get_page_info"
	ToolGetClickable       ToolName = "get_clickable_elements"
	ToolGetFormElements    ToolName = "get_form_elements"
	ToolGetPageContent     ToolName = "get_page_content"
	ToolGetElementText     ToolName = "get_element_text"
	ToolTakeScreenshot     ToolName = "take_screenshot"
	ToolOpenNewTab         ToolName = "open_new_tab"
	ToolSwitchTab          ToolName = "switch_tab"
	ToolCloseCurrentTab    ToolName = "close_current_tab"
	ToolRefreshPage        ToolName = "refresh_page"
	ToolGoBack             ToolName = "go_back"
	ToolGoForward          ToolName = "go_forward"
	ToolCloseBrowser       ToolName = "close_browser"

	ToolUserWaitAction ToolName = "wait_user_action"
	ToolUserAsk        ToolName = "ask_user"
)

func (t ToolName) String() string {
	return string(t)
}

type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}
