package costing

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingOutletContext: outlet seçilmeden maliyet istendi. Traversal başlamadan reddedilir.
	ErrMissingOutletContext = errors.New("maliyet hesabı için outlet zorunlu")
	// ErrNotFound: kayıt yok ya da başka bir organizasyona ait
	ErrNotFound = errors.New("kayıt bulunamadı")
	// ErrInvalidGuestCount: menü maliyeti için misafir sayısı pozitif olmalı
	ErrInvalidGuestCount = errors.New("misafir sayısı 0'dan büyük olmalı")
)

// CircularReferenceError: alt tarif grafında döngü. Hesabın tamamını geçersiz kılar.
type CircularReferenceError struct {
	Chain []uint // ilk ve son eleman aynı tarif
}

func (e *CircularReferenceError) Error() string {
	return fmt.Sprintf("alt tarif döngüsü tespit edildi: %s", formatChain(e.Chain))
}

// DepthExceededError: alt tarif derinliği güvenlik limitini aştı
type DepthExceededError struct {
	Chain []uint
	Limit int
}

func (e *DepthExceededError) Error() string {
	return fmt.Sprintf("alt tarif derinliği %d limitini aştı: %s", e.Limit, formatChain(e.Chain))
}

// IsFatal: CircularReference ve DepthExceeded tüm hesabı hesaplanamaz yapar
func IsFatal(err error) bool {
	var cycle *CircularReferenceError
	var depth *DepthExceededError
	return errors.As(err, &cycle) || errors.As(err, &depth)
}

// Chain: fatal graf hatasındaki tarif zincirini döndürür
func Chain(err error) []uint {
	var cycle *CircularReferenceError
	if errors.As(err, &cycle) {
		return cycle.Chain
	}
	var depth *DepthExceededError
	if errors.As(err, &depth) {
		return depth.Chain
	}
	return nil
}

func formatChain(chain []uint) string {
	parts := make([]string, 0, len(chain))
	for _, id := range chain {
		parts = append(parts, fmt.Sprintf("#%d", id))
	}
	return strings.Join(parts, " -> ")
}

// Issue: tek bir satırı sıfırlayan, hesabı durdurmayan yerel sorunlar
type Issue string

const (
	IssueNone             Issue = ""
	IssueNoPrice          Issue = "no_price"
	IssueNotConvertible   Issue = "not_convertible"
	IssueInvalidYield     Issue = "invalid_yield"
	IssueSubRecipeUnit    Issue = "sub_recipe_unit"
	IssueSubRecipeMissing Issue = "sub_recipe_missing"
	IssueProductMissing   Issue = "product_missing"
	IssueUnlinked         Issue = "unlinked"
)
