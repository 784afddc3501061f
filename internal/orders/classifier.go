// Package orders classifies courier order reports into import aggregates.
package orders

import (
	"sort"
	"strings"

	"coinnecta/internal/model"
	"coinnecta/internal/spreadsheet"
	"coinnecta/pkg/numeric"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Report column headers, matched exactly.
const (
	ColStatus        = "ESTATUS"
	ColPurchaseValue = "VALOR DE COMPRA EN PRODUCTOS"
	ColFreight       = "PRECIO FLETE"
	ColSupplierTotal = "TOTAL EN PRECIOS DE PROVEEDOR"
	ColReturnFreight = "COSTO DEVOLUCION FLETE"
)

// RequiredColumns must all be present in the header row. ColReturnFreight is optional.
var RequiredColumns = []string{ColStatus, ColPurchaseValue, ColFreight, ColSupplierTotal}

// Bucket is the outcome an order status is counted under.
type Bucket int

const (
	Unmatched Bucket = iota
	Delivered
	Rejected
	Unconfirmable
	OfficeClaim
	Incident
	InTransitReturn
	ReceivedReturn
	InRoute
)

var statusBuckets = map[string]Bucket{
	"ENTREGADO":                          Delivered,
	"RECHAZADO":                          Rejected,
	"CANCELADO":                          Unconfirmable,
	"RECLAME EN OFICINA":                 OfficeClaim,
	"NOVEDAD":                            Incident,
	"DEVOLUCION":                         InTransitReturn,
	"EN PROCESO DE DEVOLUCION":           InTransitReturn,
	"REHUSADO - RECEPCIONADO EN ALMACÉN": ReceivedReturn,
	"EN BODEGA TRANSPORTADORA":           InRoute,
	"EN REPARTO":                         InRoute,
	"REENVIO":                            InRoute,
	"TELEMERCADEO":                       InRoute,
	"EN RUTA":                            InRoute,
}

// BucketFor normalizes a raw status and returns its bucket.
func BucketFor(status string) Bucket {
	return statusBuckets[NormalizeStatus(status)]
}

// NormalizeStatus upper-cases and trims a raw status cell.
func NormalizeStatus(status string) string {
	return strings.TrimSpace(strings.ToUpper(status))
}

// Classifier turns decoded report rows into an ImportAggregate.
type Classifier struct {
	log logrus.FieldLogger
}

func NewClassifier(log logrus.FieldLogger) *Classifier {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Classifier{log: log}
}

// Classify counts every row into at most one bucket. Rows with an unknown status still
// count towards Total, and therefore Sent, but towards no other counter.
func (c *Classifier) Classify(sheet *spreadsheet.Sheet) (model.ImportAggregate, error) {
	if sheet == nil || len(sheet.Rows) == 0 {
		return model.ImportAggregate{}, ErrEmptyFile
	}

	var missing []string
	for _, col := range RequiredColumns {
		if !sheet.HasHeader(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return model.ImportAggregate{}, &ImportError{Kind: KindMissingColumns, Missing: missing}
	}

	agg := model.ImportAggregate{
		Revenue:           decimal.Zero,
		SupplierCost:      decimal.Zero,
		ShippingCost:      decimal.Zero,
		ReturnFreightCost: decimal.Zero,
		IncidentRevenue:   decimal.Zero,
	}
	unknown := make(map[string]int)

	for _, row := range sheet.Rows {
		status := NormalizeStatus(row[ColStatus])
		purchaseValue := numeric.ParseOrZero(row[ColPurchaseValue])

		agg.Total++
		agg.ShippingCost = agg.ShippingCost.Add(numeric.ParseOrZero(row[ColFreight]))
		agg.ReturnFreightCost = agg.ReturnFreightCost.Add(numeric.ParseOrZero(row[ColReturnFreight]))

		switch statusBuckets[status] {
		case Delivered:
			agg.Delivered++
			agg.Revenue = agg.Revenue.Add(purchaseValue)
			agg.SupplierCost = agg.SupplierCost.Add(numeric.ParseOrZero(row[ColSupplierTotal]))
		case Rejected:
			agg.Rejected++
		case Unconfirmable:
			agg.Unconfirmable++
		case OfficeClaim:
			agg.OfficeClaim++
		case Incident:
			agg.Incidents++
			agg.IncidentRevenue = agg.IncidentRevenue.Add(purchaseValue)
		case InTransitReturn:
			agg.InTransitReturns++
		case ReceivedReturn:
			agg.ReceivedReturns++
		case InRoute:
			agg.InRoute++
		default:
			agg.Unclassified++
			unknown[status]++
		}
	}

	agg.Sent = agg.Total - agg.Rejected - agg.Unconfirmable - agg.OfficeClaim

	if len(unknown) > 0 {
		labels := make([]string, 0, len(unknown))
		for label := range unknown {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		c.log.WithFields(logrus.Fields{
			"statuses": labels,
			"rows":     agg.Unclassified,
		}).Warn("order report contains unrecognized statuses; counted in total and sent only")
	}

	return agg, nil
}
