// Package report turns costed trips into the bilingual freight cost sheet.
package report

// Column positions in Headers.
const (
	ColNo = iota
	ColShippedDate
	ColDeliveryNo
	ColPONo
	ColWaybillNo
	ColWarehouse
	ColVehicleNo
	ColTonnage
	ColCategory
	ColMaterial
	ColModel
	ColQuantity
	ColUnitCBM
	ColTotalCBM
	ColSoldToCode
	ColSoldToName
	ColShipToName
	ColOldAddress
	ColOldWard
	ColOldProvince
	ColNewAddress
	ColNewWard
	ColNewProvince
	ColRouteCode
	ColChargingPoint
	ColAbnormalKM
	ColLongestDistance
	ColPointCode
	ColUnitLoadingPrice
	ColUnitPrice
	ColAddingPoint
	ColLoadingFee
	ColTransferFee
	ColOvernightFee
	ColReturnFee
	ColAbnormalFee
	ColWaitingFee
	ColOthersFee
	ColTotal
	ColTripTotal
	ColNote

	columnCount
)

// Headers is the header row, English over Vietnamese.
var Headers = []string{
	"No\nSTT",
	"Shipped date\nNgày xuất",
	"Delivery No\nSố lệnh",
	"PO No\nSố đơn hàng",
	"Waybill No\nSố vận đơn",
	"Warehouse code\nMã kho",
	"Vehical No\nSố xe",
	"Tonnage\nTrọng tải",
	"Categorize\nChủng loại",
	"Material code\nMã hàng",
	"Models\nSản phẩm",
	"Quantities\nSố lượng",
	"CBM\nThể tích",
	"Total CBM\nTổng thể tích",
	"Sold to code\nMã đại lý",
	"Sold to top name\nNhóm đại lý",
	"Ship to name\nTên đại lý",
	"Ship to old address\nĐịa chỉ giao hàng cũ",
	"Old ward\nPhường xã cũ",
	"Old province\nTỉnh cũ",
	"Ship to New address\nĐịa chỉ giao hàng Mới",
	"New ward\nPhường xã Mới",
	"New province\nTỉnh Mới",
	"Route Code\nVùng",
	"Charging points\nĐiểm tính cước",
	"Abnormal km\nKm trái tuyến",
	"Longest distance in km\nSố km điểm xa nhất",
	"Point code\nMã điểm tính xa nhất",
	"Unit loading price\nĐơn giá đưa hàng xuống đất",
	"Unit price\nĐơn giá chuyến",
	"Adding point\nĐiểm ghép",
	"Loading fee\nPhí đưa hàng xuống đất",
	"Transfer fee\nPhí Chuyển Tải",
	"Overnight fee\nNeo đêm",
	"Return fee\nPhí mang hàng về",
	"Abnormal fee\nPhí trái tuyến",
	"Waiting fee\nPhí chờ",
	"Others fee\nPhí khác",
	"Total Amount\nTổng tiền",
	"Total Amount by trip\nTổng tiền theo chuyến",
	"Note\nGhi chú",
}

// currencyColumns are rendered as thousands-grouped integers.
var currencyColumns = [2]int{ColUnitLoadingPrice, ColTripTotal}

// volumeColumns are rendered with two decimals.
var volumeColumns = [2]int{ColUnitCBM, ColTotalCBM}
