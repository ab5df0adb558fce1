package cost

import (
	"foodcost-backend/internal/auth"
	"foodcost-backend/internal/costing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ConversionResponse struct {
	FromUnitID  uint     `json:"from_unit_id"`
	ToUnitID    uint     `json:"to_unit_id"`
	Convertible bool     `json:"convertible"`
	Factor      *float64 `json:"factor"`
	Scope       string   `json:"scope,omitempty"`
	Inverted    bool     `json:"inverted"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Converted   *float64 `json:"converted,omitempty"`
}

// GET /api/units/convert?from=1&to=2&product_id=5&outlet_id=3&quantity=2.5
func (h *Handler) ConvertUnitsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := auth.OrganizationID(c)
		if err != nil {
			return err
		}
		from, err := queryID(c, "from")
		if err != nil {
			return err
		}
		to, err := queryID(c, "to")
		if err != nil {
			return err
		}
		if from == 0 || to == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "from ve to zorunlu")
		}
		productID, err := queryID(c, "product_id")
		if err != nil {
			return err
		}
		outletID, err := resolveOutletIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var qty *decimal.Decimal
		if s := c.Query("quantity"); s != "" {
			v, err := decimal.NewFromString(s)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "quantity geçersiz")
			}
			qty = &v
		}

		var res costing.Resolution
		err = h.snapshot(c.UserContext(), func(e *costing.Engine) error {
			res, err = e.Conversions().Resolve(c.UserContext(), from, to, costing.ConversionContext{
				OrganizationID: orgID,
				OutletID:       outletID,
				ProductID:      productID,
			})
			return err
		})
		if err != nil {
			return h.fail(c, err)
		}

		resp := ConversionResponse{
			FromUnitID:  from,
			ToUnitID:    to,
			Convertible: res.Convertible,
			Scope:       string(res.Scope),
			Inverted:    res.Inverted,
		}
		if res.Convertible {
			f := res.Factor.Round(8).InexactFloat64()
			resp.Factor = &f
			if qty != nil {
				q := qty.InexactFloat64()
				converted := res.Convert(*qty).Round(4).InexactFloat64()
				resp.Quantity = &q
				resp.Converted = &converted
			}
		}
		return c.JSON(resp)
	}
}

type PriceResponse struct {
	ProductID            uint     `json:"product_id"`
	OutletID             uint     `json:"outlet_id"`
	Found                bool     `json:"found"`
	UnitPrice            *float64 `json:"unit_price"`
	CasePrice            *float64 `json:"case_price"`
	PurchaseUnitID       *uint    `json:"purchase_unit_id"`
	SourceDate           *string  `json:"source_date"`
	PurchasableProductID *uint    `json:"purchasable_product_id"`
}

// GET /api/products/:id/price?outlet_id=3
func (h *Handler) ProductPriceHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, err := auth.OrganizationID(c)
		if err != nil {
			return err
		}
		productID, err := paramID(c, "id")
		if err != nil {
			return err
		}
		outletID, err := resolveOutletIDFromQueryOrRole(c)
		if err != nil {
			return err
		}

		var quote costing.PriceQuote
		err = h.snapshot(c.UserContext(), func(e *costing.Engine) error {
			quote, err = e.Prices().LatestPrice(c.UserContext(), orgID, productID, outletID)
			return err
		})
		if err != nil {
			return h.fail(c, err)
		}

		resp := PriceResponse{ProductID: productID, OutletID: outletID, Found: quote.Found}
		if quote.Found {
			unit := h.format.unitPrice(quote.UnitPrice)
			casePrice := h.format.money(quote.CasePrice)
			date := quote.SourceDate.Format("2006-01-02")
			resp.UnitPrice = &unit
			resp.CasePrice = &casePrice
			resp.PurchaseUnitID = &quote.PurchaseUnitID
			resp.SourceDate = &date
			resp.PurchasableProductID = &quote.PurchasableProductID
		}
		return c.JSON(resp)
	}
}
