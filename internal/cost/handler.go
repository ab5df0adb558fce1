package cost

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"foodcost-backend/internal/auth"
	"foodcost-backend/internal/costing"
	"foodcost-backend/internal/logger"
	"foodcost-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Format: sunum yuvarlaması. Motor içi hesap tam hassasiyetle yapılır.
type Format struct {
	MoneyPlaces   int32
	PercentPlaces int32
}

type Handler struct {
	snapshot costing.Snapshot
	format   Format
	log      *slog.Logger
}

func NewHandler(snapshot costing.Snapshot, format Format, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{snapshot: snapshot, format: format, log: log}
}

// ErrorResponse: maliyet hatalarının yapısal gövdesi. Chain sadece döngü/derinlik hatalarında dolu.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Chain []uint `json:"chain,omitempty"`
}

// fail: motor hatalarını HTTP'ye çevirir; UI "eksik fiyat", "döngü" ve genel hatayı ayırt edebilsin
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	var cycle *costing.CircularReferenceError
	var depth *costing.DepthExceededError

	switch {
	case errors.As(err, &fe):
		return err
	case errors.Is(err, costing.ErrMissingOutletContext):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error(), Code: "missing_outlet_context"})
	case errors.Is(err, costing.ErrInvalidGuestCount):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error(), Code: "invalid_guest_count"})
	case errors.Is(err, costing.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: err.Error(), Code: "not_found"})
	case errors.As(err, &cycle):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: err.Error(), Code: "circular_reference", Chain: cycle.Chain,
		})
	case errors.As(err, &depth):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error: err.Error(), Code: "depth_exceeded", Chain: depth.Chain,
		})
	}

	logger.FromCtx(c, h.log).Error("maliyet isteği başarısız",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()))
	return fiber.NewError(fiber.StatusInternalServerError, "Maliyet hesaplanamadı")
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || v == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s geçersiz", name))
	}
	return uint(v), nil
}

func queryID(c *fiber.Ctx, key string) (uint, error) {
	s := c.Query(key)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("%s geçersiz", key))
	}
	return uint(v), nil
}

// resolveOutletIDFromQueryOrRole: outlet_manager kendi outlet'ine sabitlenir,
// org_admin ?outlet_id= ile seçer. Outlet yoksa 0 döner; zorunluluk kararını motor verir.
func resolveOutletIDFromQueryOrRole(c *fiber.Ctx) (uint, error) {
	role, ok := c.Locals(auth.CtxUserRoleKey).(models.UserRole)
	if !ok {
		return 0, fiber.NewError(fiber.StatusForbidden, "Rol bilgisi alınamadı")
	}

	requested, err := queryID(c, "outlet_id")
	if err != nil {
		return 0, err
	}

	if role == models.RoleOutletManager {
		pinned, ok := c.Locals(auth.CtxOutletIDKey).(*uint)
		if !ok || pinned == nil {
			return 0, fiber.NewError(fiber.StatusForbidden, "Outlet bilgisi bulunamadı")
		}
		if requested != 0 && requested != *pinned {
			return 0, fiber.NewError(fiber.StatusForbidden, "Bu outlet için yetkiniz yok")
		}
		return *pinned, nil
	}
	return requested, nil
}
