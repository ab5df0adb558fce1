package cost

import (
	"fmt"

	"foodcost-backend/internal/auth"
	"foodcost-backend/internal/costing"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet   = "Maliyet"
	noPriceLabel  = "Fiyat verisi yok"
	unlinkedLabel = "Ürün bağlantısı yok"
	xlsxMIME      = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeader = []interface{}{"Sıra", "Malzeme", "Miktar", "Verim %", "Birim Fiyat", "Maliyet", "Maliyet %", "Durum"}

// GET /api/recipes/:id/cost/export?outlet_id=3
// Fiyatsız satırlar gizlenmez, "Fiyat verisi yok" olarak işaretlenir.
func (h *Handler) ExportRecipeCostHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := auth.OrganizationID(c)
		if err != nil {
			return err
		}
		recipeID, err := paramID(c, "id")
		if err != nil {
			return err
		}
		outletID, err := resolveOutletIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var rc *costing.RecipeCost
		err = h.snapshot(c.UserContext(), func(e *costing.Engine) error {
			rc, err = e.CostRecipe(c.UserContext(), orgID, recipeID, outletID)
			return err
		})
		if err != nil {
			return h.fail(c, err)
		}

		f, err := h.costSheet(h.format.recipe(rc))
		if err != nil {
			return h.fail(c, err)
		}
		defer f.Close()

		buf, err := f.WriteToBuffer()
		if err != nil {
			return h.fail(c, err)
		}

		c.Set(fiber.HeaderContentType, xlsxMIME)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="recipe-%d-outlet-%d-cost.xlsx"`, rc.RecipeID, rc.OutletID))
		return c.Send(buf.Bytes())
	}
}

func (h *Handler) costSheet(r RecipeCostResponse) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	rows := [][]interface{}{
		{r.Name},
		{"Outlet", r.OutletID},
		{},
		exportHeader,
	}
	for _, l := range r.Ingredients {
		row := []interface{}{l.Position, l.Name, l.Quantity, l.YieldPercentage}
		switch {
		case l.HasPrice:
			var pct interface{} = ""
			if l.CostPercentage != nil {
				pct = *l.CostPercentage
			}
			status := ""
			if l.Incomplete {
				status = "Alt tarifte eksik fiyat"
			}
			row = append(row, *l.UnitPrice, *l.Cost, pct, status)
		case l.Issue == string(costing.IssueUnlinked):
			row = append(row, "", "", "", unlinkedLabel)
		default:
			row = append(row, "", noPriceLabel, "", l.Issue)
		}
		rows = append(rows, row)
	}
	rows = append(rows,
		[]interface{}{},
		[]interface{}{"", "Toplam", "", "", "", r.TotalCost},
		[]interface{}{"", "Eksik fiyat", "", "", "", r.MissingPriceCount},
	)
	if r.CostPerServing != nil {
		rows = append(rows, []interface{}{"", "Porsiyon maliyeti", "", "", "", *r.CostPerServing})
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}

	if err := f.SetCellStyle(exportSheet, "A1", "A1", bold); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A4", "H4", bold); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetColWidth(exportSheet, "B", "B", 32); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}
