package costing

import (
	"context"

	"foodcost-backend/internal/models"
)

// recipePath: mevcut çağrı yığınındaki tarifler. Her dal kendi kopyasını taşır, böylece
// paralel kardeşler aynı ziyaret kümesini paylaşmaz.
type recipePath []uint

func (p recipePath) contains(id uint) bool {
	for _, v := range p {
		if v == id {
			return true
		}
	}
	return false
}

func (p recipePath) with(id uint) recipePath {
	next := make(recipePath, len(p), len(p)+1)
	copy(next, p)
	return append(next, id)
}

// graphWalker: maliyet hesabı ve alerjen toplama için ortak tarif grafı gezgini
type graphWalker struct {
	store    Store
	maxDepth int
}

// enter: döngü ve derinlik kontrolünden sonra tarifi yükler. Döngü kontrolü önce yapılır,
// böylece limit içindeki bir döngü her zaman CircularReference olarak raporlanır.
func (w graphWalker) enter(ctx context.Context, orgID uint, path recipePath, recipeID uint) (*models.Recipe, recipePath, error) {
	next := path.with(recipeID)
	if path.contains(recipeID) {
		return nil, nil, &CircularReferenceError{Chain: next}
	}
	if len(next)-1 > w.maxDepth {
		return nil, nil, &DepthExceededError{Chain: next, Limit: w.maxDepth}
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	recipe, err := w.store.Recipe(ctx, orgID, recipeID)
	if err != nil {
		return nil, nil, err
	}
	return recipe, next, nil
}
