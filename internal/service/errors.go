package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	TooManyRequests     = 429
	InternalServerError = 500
)

var (
	ErrParamInvalid         = errors.New("参数错误")
	ErrContactInvalid       = errors.New("联系人信息不完整")
	ErrConversationNotFound = errors.New("会话不存在")
	ErrMessageNotFound      = errors.New("消息不存在")
	ErrRetryNotAllowed      = errors.New("仅失败的消息可以重试")
	ErrNotificationNotFound = errors.New("通知不存在")
	ErrResourceIDEmpty      = errors.New("资源ID不能为空")
	ErrFileNotSupported     = errors.New("不支持的文件类型")
	ErrRosterMemberNotFound = errors.New("花名册成员不存在")
	ErrLLMInvalidKey        = errors.New("AI助手密钥无效，请重新配置")
	ErrLLMQuotaExceeded     = errors.New("AI助手额度已用尽，请检查账单")
	ErrLLMUnavailable       = errors.New("AI助手暂时不可用，请稍后重试")
	UnauthorizedError       = errors.New("权限不足")
	UnExpectedError         = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:         BadRequest,
	ErrContactInvalid:       BadRequest,
	ErrConversationNotFound: NotFound,
	ErrMessageNotFound:      NotFound,
	ErrRetryNotAllowed:      BadRequest,
	ErrNotificationNotFound: NotFound,
	ErrResourceIDEmpty:      BadRequest,
	ErrFileNotSupported:     BadRequest,
	ErrRosterMemberNotFound: NotFound,
	ErrLLMInvalidKey:        Unauthorized,
	ErrLLMQuotaExceeded:     TooManyRequests,
	ErrLLMUnavailable:       InternalServerError,
	UnauthorizedError:       Unauthorized,
	UnExpectedError:         InternalServerError,
}
