package transport

// BizCode 表示业务码的强类型封装，用于在日志上下文中减少误传风险。
type BizCode int

// 通用客户端业务码。战役域的细分码由各上下文的 error mapper 负责。
const (
	OK           = 0
	InvalidParam = 400
	Unauthorized = 401
	NotFound     = 404
	BizRejected  = 409
	SystemError  = 500
	Unavailable  = 503
	Timeout      = 504
)
