package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ghuser/homestock/pkg/database"
	recdomain "github.com/ghuser/homestock/services/recipe/domain"
	"github.com/ghuser/homestock/services/recipe/domain/models"
)

// RecipeRepository implements repositories.RecipeRepository against
// PostgreSQL. Ingredient and step lists are replaced wholesale on update;
// ordering is kept in explicit position / step_number columns.
type RecipeRepository struct {
	db *database.Database
}

// NewRecipeRepository returns a RecipeRepository backed by the given pool.
func NewRecipeRepository(db *database.Database) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Save persists a new recipe with its children in one transaction.
func (r *RecipeRepository) Save(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recipes
			   (id, name, description, servings, prep_time_minutes, cook_time_minutes,
			    is_favorite, source_url, image_url, external_id, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			recipe.ID, recipe.Name, recipe.Description, recipe.Servings,
			recipe.PrepTimeMinutes, recipe.CookTimeMinutes, recipe.IsFavorite,
			recipe.Source.URL, recipe.Source.ImageURL, recipe.Source.ExternalID,
			recipe.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert recipe: %w", err)
		}
		return insertChildren(ctx, tx, recipe)
	})
}

// GetByID loads a recipe with ingredients and steps in stored order.
// Returns ErrRecipeNotFound if absent.
func (r *RecipeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	row := r.db.DB().QueryRowContext(ctx,
		`SELECT id, name, description, servings, prep_time_minutes, cook_time_minutes,
		        is_favorite, source_url, image_url, external_id, created_at
		 FROM recipes WHERE id = $1`, id)
	recipe, err := scanRecipe(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadChildren(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// FindAll returns recipes newest first, optionally favorites only.
func (r *RecipeRepository) FindAll(ctx context.Context, favoritesOnly bool) ([]*models.Recipe, error) {
	query := `SELECT id, name, description, servings, prep_time_minutes, cook_time_minutes,
	                 is_favorite, source_url, image_url, external_id, created_at
	          FROM recipes`
	if favoritesOnly {
		query += ` WHERE is_favorite`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []*models.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}

	for _, recipe := range recipes {
		if err := r.loadChildren(ctx, recipe); err != nil {
			return nil, err
		}
	}
	return recipes, nil
}

// Update writes the recipe row and replaces both child lists in one
// transaction. Returns ErrRecipeNotFound if the recipe is gone.
func (r *RecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE recipes SET
			   name = $2, description = $3, servings = $4,
			   prep_time_minutes = $5, cook_time_minutes = $6, is_favorite = $7,
			   source_url = $8, image_url = $9, external_id = $10
			 WHERE id = $1`,
			recipe.ID, recipe.Name, recipe.Description, recipe.Servings,
			recipe.PrepTimeMinutes, recipe.CookTimeMinutes, recipe.IsFavorite,
			recipe.Source.URL, recipe.Source.ImageURL, recipe.Source.ExternalID,
		)
		if err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return recdomain.ErrRecipeNotFound
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
			return fmt.Errorf("clear ingredients: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM recipe_steps WHERE recipe_id = $1`, recipe.ID); err != nil {
			return fmt.Errorf("clear steps: %w", err)
		}
		return insertChildren(ctx, tx, recipe)
	})
}

// Delete removes the recipe; ingredients and steps go via ON DELETE CASCADE.
func (r *RecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return recdomain.ErrRecipeNotFound
	}
	return nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, recipe *models.Recipe) error {
	for i, ing := range recipe.Ingredients {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (id, recipe_id, position, name, amount, unit, notes)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			ing.ID, recipe.ID, i+1, ing.Name, ing.Amount, ing.Unit, ing.Notes,
		)
		if err != nil {
			return fmt.Errorf("insert ingredient: %w", err)
		}
	}
	for _, step := range recipe.Steps {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_steps (id, recipe_id, step_number, instruction)
			 VALUES ($1, $2, $3, $4)`,
			step.ID, recipe.ID, step.StepNumber, step.Instruction,
		)
		if err != nil {
			return fmt.Errorf("insert step: %w", err)
		}
	}
	return nil
}

func (r *RecipeRepository) loadChildren(ctx context.Context, recipe *models.Recipe) error {
	rows, err := r.db.DB().QueryContext(ctx,
		`SELECT id, name, amount, unit, notes
		 FROM recipe_ingredients WHERE recipe_id = $1 ORDER BY position ASC`,
		recipe.ID)
	if err != nil {
		return fmt.Errorf("query ingredients: %w", err)
	}
	for rows.Next() {
		var ing models.Ingredient
		if err := rows.Scan(&ing.ID, &ing.Name, &ing.Amount, &ing.Unit, &ing.Notes); err != nil {
			rows.Close()
			return fmt.Errorf("scan ingredient: %w", err)
		}
		recipe.Ingredients = append(recipe.Ingredients, ing)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate ingredients: %w", err)
	}

	rows, err = r.db.DB().QueryContext(ctx,
		`SELECT id, step_number, instruction
		 FROM recipe_steps WHERE recipe_id = $1 ORDER BY step_number ASC`,
		recipe.ID)
	if err != nil {
		return fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var step models.Step
		if err := rows.Scan(&step.ID, &step.StepNumber, &step.Instruction); err != nil {
			return fmt.Errorf("scan step: %w", err)
		}
		recipe.Steps = append(recipe.Steps, step)
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecipe maps one recipe row, translating sql.ErrNoRows to
// ErrRecipeNotFound.
func scanRecipe(row rowScanner) (*models.Recipe, error) {
	var recipe models.Recipe
	err := row.Scan(
		&recipe.ID, &recipe.Name, &recipe.Description, &recipe.Servings,
		&recipe.PrepTimeMinutes, &recipe.CookTimeMinutes, &recipe.IsFavorite,
		&recipe.Source.URL, &recipe.Source.ImageURL, &recipe.Source.ExternalID,
		&recipe.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recdomain.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("query recipe: %w", err)
	}
	return &recipe, nil
}
