// internal/pkg/geo/distance.go
package geo

import "math"

// earthRadiusKm 地球半径，haversine 公式使用的常量
const earthRadiusKm = 6371.0

// LatLng 是一个经纬度坐标点（单位：度）。
type LatLng struct {
	Lat float64
	Lng float64
}

// DistanceKm 使用 haversine 公式计算两点间的大圆距离，并向上取整到公里。
// 配送计费按整公里计算，0.1 公里的路程也按 1 公里收费，所以这里永远向上取整。
// 相同的两点返回 0。对超出合法范围的经纬度不做校验，结果在数学上有定义但无业务意义。
func DistanceKm(a, b LatLng) int {
	dLat := deg2rad(b.Lat - a.Lat)
	dLng := deg2rad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(deg2rad(a.Lat))*math.Cos(deg2rad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return int(math.Ceil(earthRadiusKm * c))
}

func deg2rad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
