package backlog

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Spok95/restock/internal/domain/cards"
	"github.com/Spok95/restock/internal/domain/replenishment"
	"github.com/Spok95/restock/internal/infra/sheet"
)

// ColDetailOrderID tags each detail row with the order it went out on.
const ColDetailOrderID = "ID DO PEDIDO"

// DetailColumns is the fixed projection of the detailed report.
var DetailColumns = []string{
	replenishment.ColCenterName,
	replenishment.ColBranchName,
	replenishment.ColCode,
	"manutencaoInsumoNome",
	"veiculoModelo",
	"demandaMes",
	"qtdEstoque",
	"qtdTransito",
	"estoqueCdabastecimento",
	"estoqueCdSp",
	"estoqueCdPe",
	"estoqueCdSc",
	"estoqueCDEx",
	replenishment.ColQuantity,
	replenishment.ColWeight,
	replenishment.ColDayLabel,
	ColDetailOrderID,
	"Regiao",
}

// DetailRow is one collapsed line of the detailed report: the key columns
// (every detail column but weight) and the summed weight.
type DetailRow struct {
	Key    []string
	Weight decimal.Decimal
}

// DetailHeader is the key columns followed by the weight column.
func DetailHeader() []string {
	h := make([]string, 0, len(DetailColumns))
	for _, c := range DetailColumns {
		if c != replenishment.ColWeight {
			h = append(h, c)
		}
	}
	return append(h, replenishment.ColWeight)
}

// BuildDetail projects every row of every successful card onto
// DetailColumns and sums weight over identical key combinations,
// in first-seen order.
func BuildDetail(results []cards.Result) []DetailRow {
	var out []DetailRow
	index := make(map[string]int)
	for _, r := range cards.Successes(results) {
		for _, row := range r.Card.Rows {
			key := make([]string, 0, len(DetailColumns)-1)
			for _, c := range DetailColumns {
				switch c {
				case replenishment.ColWeight:
					continue
				case ColDetailOrderID:
					key = append(key, r.OrderID)
				default:
					key = append(key, row.Fields[c])
				}
			}
			k := strings.Join(key, "\x00")
			if i, ok := index[k]; ok {
				out[i].Weight = out[i].Weight.Add(row.Weight)
				continue
			}
			index[k] = len(out)
			out = append(out, DetailRow{Key: key, Weight: row.Weight})
		}
	}
	return out
}

// DetailPath names the detail file for the given moment.
func DetailPath(dir, prefix string, now time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("%s_%s.xlsx", prefix, now.Format("2006-01-02_150405")))
}

// WriteDetail writes the collapsed detail rows to path and returns how many
// lines were written.
func WriteDetail(path string, results []cards.Result) (int, error) {
	rows := BuildDetail(results)
	if len(rows) == 0 {
		return 0, ErrNothingToSave
	}
	header := DetailHeader()
	out := make([][]any, 0, len(rows))
	for _, dr := range rows {
		line := make([]any, 0, len(header))
		for i, v := range dr.Key {
			switch header[i] {
			case replenishment.ColCode, ColDetailOrderID:
				line = append(line, v)
			default:
				line = append(line, cellValue(v))
			}
		}
		line = append(line, number(dr.Weight))
		out = append(out, line)
	}
	if err := sheet.WriteFile(path, header, out); err != nil {
		return 0, fmt.Errorf("write detail %s: %w", path, err)
	}
	return len(out), nil
}
