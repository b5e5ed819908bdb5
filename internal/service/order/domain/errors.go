// internal/service/order/domain/errors.go
package domain

import "github.com/pkg/errors"

var (
	// ErrInvalidArgument 覆盖所有校验类失败：手机号格式、空购物车、负数金额等。
	// 这类错误直接返回给调用方，不重试。
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = errors.New("order not found")

	// ErrInvalidTransition 订单状态只允许沿生命周期向前流转
	ErrInvalidTransition = errors.New("invalid status transition")
)
