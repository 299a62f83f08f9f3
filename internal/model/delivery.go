// Package model defines the records read from the operation, carrier and
// reference exports.
package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DeliveryRecord is one shipped line item from the operation export.
type DeliveryRecord struct {
	VehicleNo         string `json:"vehicleNo"`
	WaybillNo         string `json:"waybillNo"`
	PickupDate        string `json:"pickupDate"`
	SONo              string `json:"soNo"`
	SoldToCode        string `json:"soldToCode"`
	DNNo              string `json:"dnNo"`
	MaterialNo        string `json:"materialNo"`
	MaterialDesc      string `json:"materialDesp"`
	DeliveredQuantity string `json:"deliveryQuantity"`
	StorageLocation   string `json:"storageLocation"`
	PONo              string `json:"poNo"`
	ShipToName        string `json:"shipToName"`
	SoldToName        string `json:"soldToName"`
	ShipToAddress     string `json:"shipToAddress"`
	RDD               string `json:"rdd"`
}

// ParseQuantity parses the delivered quantity, ignoring thousands commas.
func (r DeliveryRecord) ParseQuantity() (decimal.Decimal, bool) {
	q, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(r.DeliveredQuantity), ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return q, true
}

// Quantity is the delivered quantity. Unparseable values count as zero.
func (r DeliveryRecord) Quantity() decimal.Decimal {
	q, _ := r.ParseQuantity()
	return q
}

// CarrierStatus is one waybill's row in the carrier tracking export.
type CarrierStatus struct {
	Status             string `json:"status"`
	WaybillNo          string `json:"waybillNo"`
	TMSDNs             string `json:"TMSDNs"`
	SAPDN              string `json:"SAPDN"`
	AddingPoint        string `json:"addingPoint"`
	LoadingRate        string `json:"loadingRate"`
	BudgetNumber       string `json:"budgetNumber"`
	IssuingWarehouse   string `json:"issuingWarehouse"`
	ReceivingWarehouse string `json:"receivingWarehouse"`
	CarrierName        string `json:"carrierName"`
	TruckType          string `json:"truckType"`
	EstimatePickUpTime string `json:"estimatePickUpTime"`
	RefuseToOrder      string `json:"refuseToOrder"`
	RejectReasonDetail string `json:"rejectReasonDetail"`
	CreatedBy          string `json:"createBy"`
	CreationDate       string `json:"creationDate"`
}
