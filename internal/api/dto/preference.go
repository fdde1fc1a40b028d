package dto

// PreferenceReq AI助手偏好设置请求
type PreferenceReq struct {
	APIKey string `json:"api_key"`
	Model  string `json:"model"`
}
