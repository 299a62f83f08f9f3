package trip

import (
	"strings"

	"github.com/sells-group/freight-recon/internal/model"
)

// WaybillGroup is the records sharing one waybill, in input order.
type WaybillGroup struct {
	WaybillNo string
	Records   []model.DeliveryRecord
}

// Group partitions records by waybill. Groups come out in first-seen order.
// Records without a waybill share the "" group.
func Group(records []model.DeliveryRecord) []WaybillGroup {
	var groups []WaybillGroup
	index := make(map[string]int)

	for _, r := range records {
		wb := strings.TrimSpace(r.WaybillNo)
		i, ok := index[wb]
		if !ok {
			i = len(groups)
			index[wb] = i
			groups = append(groups, WaybillGroup{WaybillNo: wb})
		}
		groups[i].Records = append(groups[i].Records, r)
	}

	return groups
}
