package recipe

import (
	"context"
	"strings"

	"recipe-catalog/domain"
	"recipe-catalog/entities"
)

// associationPatch holds the resolved-name lists of a write payload.
// A nil list means the field was absent and the association is untouched;
// an empty list clears it.
type associationPatch struct {
	tags        []string
	ingredients []string
}

func newAssociationPatch(tags, ingredients *[]domain.NamedItemRequest) (associationPatch, error) {
	var patch associationPatch
	var err error
	if tags != nil {
		if patch.tags, err = normalizeNames(*tags); err != nil {
			return associationPatch{}, err
		}
	}
	if ingredients != nil {
		if patch.ingredients, err = normalizeNames(*ingredients); err != nil {
			return associationPatch{}, err
		}
	}
	return patch, nil
}

// normalizeNames trims names and drops repeats, since the target association
// is a set. Matching stays case-sensitive.
func normalizeNames(items []domain.NamedItemRequest) ([]string, error) {
	names := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, domain.ErrEmptyName
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names, nil
}

// apply resolves every present list within the owner's scope and replaces the
// recipe's association set with exactly the result. It must run inside the
// same transaction as the recipe field update.
func (p associationPatch) apply(ctx context.Context, tx RecipeRepository, recipe *entities.Recipe) error {
	if p.tags != nil {
		tags, err := tx.ResolveTags(ctx, recipe.UserID, p.tags)
		if err != nil {
			return err
		}
		if err := tx.ReplaceTags(ctx, recipe, tags); err != nil {
			return err
		}
	}
	if p.ingredients != nil {
		ingredients, err := tx.ResolveIngredients(ctx, recipe.UserID, p.ingredients)
		if err != nil {
			return err
		}
		if err := tx.ReplaceIngredients(ctx, recipe, ingredients); err != nil {
			return err
		}
	}
	return nil
}
