package costing

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"foodcost-backend/internal/models"
)

type AllergenKind string

const (
	AllergenGluten      AllergenKind = "gluten"
	AllergenCrustaceans AllergenKind = "crustaceans"
	AllergenEggs        AllergenKind = "eggs"
	AllergenFish        AllergenKind = "fish"
	AllergenPeanuts     AllergenKind = "peanuts"
	AllergenSoybeans    AllergenKind = "soybeans"
	AllergenMilk        AllergenKind = "milk"
	AllergenTreeNuts    AllergenKind = "tree_nuts"
	AllergenCelery      AllergenKind = "celery"
	AllergenMustard     AllergenKind = "mustard"
	AllergenSesame      AllergenKind = "sesame"
	AllergenSulphites   AllergenKind = "sulphites"
	AllergenLupin       AllergenKind = "lupin"
	AllergenMolluscs    AllergenKind = "molluscs"
)

// AllAllergens: raporlama sırası
var AllAllergens = []AllergenKind{
	AllergenGluten, AllergenCrustaceans, AllergenEggs, AllergenFish,
	AllergenPeanuts, AllergenSoybeans, AllergenMilk, AllergenTreeNuts,
	AllergenCelery, AllergenMustard, AllergenSesame, AllergenSulphites,
	AllergenLupin, AllergenMolluscs,
}

func productAllergens(p *models.CommonProduct) map[AllergenKind]bool {
	return map[AllergenKind]bool{
		AllergenGluten:      p.ContainsGluten,
		AllergenCrustaceans: p.ContainsCrustaceans,
		AllergenEggs:        p.ContainsEggs,
		AllergenFish:        p.ContainsFish,
		AllergenPeanuts:     p.ContainsPeanuts,
		AllergenSoybeans:    p.ContainsSoybeans,
		AllergenMilk:        p.ContainsMilk,
		AllergenTreeNuts:    p.ContainsTreeNuts,
		AllergenCelery:      p.ContainsCelery,
		AllergenMustard:     p.ContainsMustard,
		AllergenSesame:      p.ContainsSesame,
		AllergenSulphites:   p.ContainsSulphites,
		AllergenLupin:       p.ContainsLupin,
		AllergenMolluscs:    p.ContainsMolluscs,
	}
}

// UnverifiedLine: alerjen içeriği bilinmeyen satır
type UnverifiedLine struct {
	RecipeID uint
	LineID   uint
	Name     string
	Reason   Issue
}

type AllergenProfile struct {
	RecipeID   uint
	Contains   []AllergenKind
	Vegan      bool
	Vegetarian bool
	Unverified []UnverifiedLine
}

func (p AllergenProfile) Has(kind AllergenKind) bool {
	for _, k := range p.Contains {
		if k == kind {
			return true
		}
	}
	return false
}

// allergenAcc: alerjenler OR, diyet bayrakları AND ile birleşir. Negatif override yoktur.
type allergenAcc struct {
	contains   map[AllergenKind]bool
	pool       int
	vegan      bool
	vegetarian bool
	unverified []UnverifiedLine
}

func (a *allergenAcc) add(p *models.CommonProduct, costBearing bool) {
	for kind, flagged := range productAllergens(p) {
		if flagged {
			a.contains[kind] = true
		}
	}
	if !costBearing {
		return
	}
	a.pool++
	a.vegan = a.vegan && p.IsVegan
	a.vegetarian = a.vegetarian && p.IsVegetarian
}

// Aggregate: tarif grafındaki tüm ürünlerin alerjen/diyet profili. Fiyattan bağımsızdır,
// bu yüzden outlet gerektirmez.
func (e *Engine) Aggregate(ctx context.Context, orgID, recipeID uint) (*AllergenProfile, error) {
	start := time.Now()
	acc := &allergenAcc{
		contains:   map[AllergenKind]bool{},
		vegan:      true,
		vegetarian: true,
	}
	err := e.collectAllergens(ctx, orgID, nil, recipeID, true, acc)
	e.opts.Metrics.observe("allergen", start, err, len(acc.unverified))
	if err != nil {
		return nil, err
	}

	profile := &AllergenProfile{
		RecipeID:   recipeID,
		Contains:   []AllergenKind{},
		Vegan:      acc.pool > 0 && acc.vegan,
		Vegetarian: acc.pool > 0 && acc.vegetarian,
		Unverified: acc.unverified,
	}
	for _, kind := range AllAllergens {
		if acc.contains[kind] {
			profile.Contains = append(profile.Contains, kind)
		}
	}
	e.log.Debug("alerjen profili çıkarıldı",
		slog.Uint64("recipe_id", uint64(recipeID)),
		slog.Int("allergens", len(profile.Contains)),
		slog.Int("unverified", len(profile.Unverified)))
	return profile, nil
}

func (e *Engine) collectAllergens(ctx context.Context, orgID uint, path recipePath, recipeID uint, costBearing bool, acc *allergenAcc) error {
	recipe, next, err := e.walker.enter(ctx, orgID, path, recipeID)
	if err != nil {
		return err
	}

	for _, ing := range recipe.Ingredients {
		bearing := costBearing && ing.Quantity > 0
		unverified := UnverifiedLine{RecipeID: recipe.ID, LineID: ing.ID, Name: ing.Description}

		switch {
		case ing.SubRecipeID != nil:
			err := e.collectAllergens(ctx, orgID, next, *ing.SubRecipeID, bearing, acc)
			if errors.Is(err, ErrNotFound) {
				unverified.Reason = IssueSubRecipeMissing
				acc.unverified = append(acc.unverified, unverified)
				continue
			}
			if err != nil {
				return err
			}
		case ing.CommonProductID != nil:
			p, err := e.store.CommonProduct(ctx, orgID, *ing.CommonProductID)
			if errors.Is(err, ErrNotFound) {
				unverified.Reason = IssueProductMissing
				acc.unverified = append(acc.unverified, unverified)
				continue
			}
			if err != nil {
				return err
			}
			acc.add(p, bearing)
		default:
			unverified.Reason = IssueUnlinked
			acc.unverified = append(acc.unverified, unverified)
		}
	}
	return nil
}
