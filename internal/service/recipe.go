package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantryloft/backend/internal/models"
)

// RecipeService handles recipe operations. Every operation is scoped to
// the owning user: a recipe owned by someone else is indistinguishable
// from one that does not exist.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ListRecipes returns all recipes owned by the caller, in store order.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe retrieves a single recipe by id if the caller owns it. A
// malformed id, a missing row and a row owned by another user all
// surface as ErrNotFound.
func (s *RecipeService) GetRecipe(ctx context.Context, id string, userID uuid.UUID) (*models.Recipe, error) {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var recipe models.Recipe
	err = s.db.WithContext(ctx).Where("id = ? AND user_id = ?", recipeID, userID).First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe inserts a recipe owned by recipe.UserID and returns it
// with its generated id and timestamp populated.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *models.Recipe) (*models.Recipe, error) {
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// UpdateRecipe overwrites all mutable fields of the recipe matching
// id AND userID. Zero matched rows means the id does not exist or the
// caller does not own it; both collapse into ErrNotFound.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id string, userID uuid.UUID, recipe *models.Recipe) error {
	recipeID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}

	result := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("id = ? AND user_id = ?", recipeID, userID).
		Updates(map[string]interface{}{
			"title":        recipe.Title,
			"description":  recipe.Description,
			"ingredients":  recipe.Ingredients,
			"instructions": recipe.Instructions,
			"image_url":    recipe.ImageURL,
			"category_id":  recipe.CategoryID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
