// internal/service/order/domain/tariff.go
package domain

import "github.com/pkg/errors"

// 配送费阶梯：1 公里以内收基础费 ₹15，之后每公里加收 ₹10。
// 金额一律用 paise（最小货币单位）整数表示，费用计算路径上不出现浮点数。
const (
	baseFeePaise  int64 = 1500 // ₹15
	perKmFeePaise int64 = 1000 // ₹10/km，超出首公里的部分
)

// DeliveryFeePaise 把整公里距离映射为配送费。
// distanceKm == 0 表示自提/无配送，不收配送费。
// 距离必须是 DistanceKm 预先取整过的非负整数，负数属于调用方违约。
func DeliveryFeePaise(distanceKm int) (int64, error) {
	switch {
	case distanceKm < 0:
		return 0, errors.Wrap(ErrInvalidArgument, "distance must be non-negative")
	case distanceKm == 0:
		return 0, nil
	case distanceKm <= 1:
		return baseFeePaise, nil
	default:
		return baseFeePaise + perKmFeePaise*int64(distanceKm-1), nil
	}
}
