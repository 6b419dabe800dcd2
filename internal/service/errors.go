package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrUserNotFound     = errors.New("用户不存在")
	ErrUserExist        = errors.New("用户已存在")
	ErrPollNotFound     = errors.New("投票不存在")
	ErrPollClosed       = errors.New("投票已结束")
	ErrOptionNotFound   = errors.New("选项不存在")
	ErrAlreadyVoted     = errors.New("已经投过票")
	ErrCommentNotFound  = errors.New("评论不存在")
	ErrActionInvalid    = errors.New("不支持的动作类型")
	ErrPaymentRequired  = errors.New("需要完成支付")
	UnauthorizedError   = errors.New("权限不足")
	UnExpectedError     = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:    BadRequest,
	ErrUserNotFound:    NotFound,
	ErrUserExist:       BadRequest,
	ErrPollNotFound:    NotFound,
	ErrPollClosed:      BadRequest,
	ErrOptionNotFound:  NotFound,
	ErrAlreadyVoted:    BadRequest,
	ErrCommentNotFound: NotFound,
	ErrActionInvalid:   BadRequest,
	ErrPaymentRequired: BadRequest,
	UnauthorizedError:  Unauthorized,
	UnExpectedError:    InternalServerError,
}
