package services_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"kitchen-inventory-service/models"
	"kitchen-inventory-service/repository"
)

// --- Mock IngredientRepository ---

type mockIngredientRepo struct {
	ingredients map[uint]*models.Ingredient
	nextID      uint
	failAll     bool
}

func newMockIngredientRepo() *mockIngredientRepo {
	return &mockIngredientRepo{ingredients: make(map[uint]*models.Ingredient), nextID: 1}
}

func (m *mockIngredientRepo) Create(_ context.Context, ing *models.Ingredient) error {
	if m.failAll {
		return fmt.Errorf("storage down")
	}
	if ing.IngredientID == 0 {
		ing.IngredientID = m.nextID
		m.nextID++
	}
	ing.DateAdded = time.Now().UTC()
	ing.DateUpdated = ing.DateAdded
	m.ingredients[ing.IngredientID] = ing
	return nil
}

func (m *mockIngredientRepo) FindByID(_ context.Context, id uint) (*models.Ingredient, error) {
	if m.failAll {
		return nil, fmt.Errorf("storage down")
	}
	ing, ok := m.ingredients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *ing
	return &copied, nil
}

func (m *mockIngredientRepo) FindByIDs(_ context.Context, ids []uint) ([]models.Ingredient, error) {
	if m.failAll {
		return nil, fmt.Errorf("storage down")
	}
	var result []models.Ingredient
	for _, id := range ids {
		if ing, ok := m.ingredients[id]; ok {
			result = append(result, *ing)
		}
	}
	return result, nil
}

func (m *mockIngredientRepo) FindAll(_ context.Context) ([]models.Ingredient, error) {
	if m.failAll {
		return nil, fmt.Errorf("storage down")
	}
	ids := make([]uint, 0, len(m.ingredients))
	for id := range m.ingredients {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]models.Ingredient, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.ingredients[id])
	}
	return result, nil
}

func (m *mockIngredientRepo) Update(_ context.Context, ing *models.Ingredient) error {
	if _, ok := m.ingredients[ing.IngredientID]; !ok {
		return repository.ErrNotFound
	}
	copied := *ing
	copied.DateUpdated = time.Now().UTC()
	m.ingredients[ing.IngredientID] = &copied
	return nil
}

func (m *mockIngredientRepo) AdjustQuantity(_ context.Context, id uint, delta float64) (*models.Ingredient, bool, error) {
	ing, ok := m.ingredients[id]
	if !ok {
		return nil, false, repository.ErrNotFound
	}
	crossed := ing.QuantityDetails.ApplyDelta(delta)
	ing.DateUpdated = time.Now().UTC()
	copied := *ing
	return &copied, crossed, nil
}

func (m *mockIngredientRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.ingredients[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.ingredients, id)
	return nil
}

// --- Mock RecipeRepository ---

type mockRecipeRepo struct {
	recipes map[uint]*models.Recipe
	nextID  uint
}

func newMockRecipeRepo() *mockRecipeRepo {
	return &mockRecipeRepo{recipes: make(map[uint]*models.Recipe), nextID: 1}
}

func (m *mockRecipeRepo) Create(_ context.Context, recipe *models.Recipe) error {
	if recipe.RecipeID == 0 {
		recipe.RecipeID = m.nextID
		m.nextID++
	}
	for i := range recipe.RecipeComponents {
		recipe.RecipeComponents[i].RecipeID = recipe.RecipeID
	}
	recipe.DateAdded = time.Now().UTC()
	recipe.DateUpdated = recipe.DateAdded
	m.recipes[recipe.RecipeID] = recipe
	return nil
}

func (m *mockRecipeRepo) FindByID(_ context.Context, id uint) (*models.Recipe, error) {
	recipe, ok := m.recipes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *recipe
	copied.RecipeComponents = append([]models.RecipeComponent(nil), recipe.RecipeComponents...)
	copied.UseHistory = append([]models.RecipeUseHistory(nil), recipe.UseHistory...)
	return &copied, nil
}

func (m *mockRecipeRepo) FindAll(_ context.Context) ([]models.Recipe, error) {
	ids := make([]uint, 0, len(m.recipes))
	for id := range m.recipes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]models.Recipe, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.recipes[id])
	}
	return result, nil
}

func (m *mockRecipeRepo) UpdateName(_ context.Context, id uint, name string) error {
	recipe, ok := m.recipes[id]
	if !ok {
		return repository.ErrNotFound
	}
	recipe.RecipeName = name
	return nil
}

func (m *mockRecipeRepo) ReplaceComponents(_ context.Context, id uint, components []models.RecipeComponent) error {
	recipe, ok := m.recipes[id]
	if !ok {
		return repository.ErrNotFound
	}
	for i := range components {
		components[i].RecipeID = id
	}
	recipe.RecipeComponents = components
	return nil
}

func (m *mockRecipeRepo) RecordUse(_ context.Context, id uint, usedAt time.Time) error {
	recipe, ok := m.recipes[id]
	if !ok {
		return repository.ErrNotFound
	}
	recipe.UseHistory = append(recipe.UseHistory, models.RecipeUseHistory{RecipeID: id, LastUsed: usedAt})
	recipe.UseCount++
	return nil
}

func (m *mockRecipeRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.recipes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.recipes, id)
	return nil
}

// --- Mock ReportRepository ---

type mockReportRepo struct {
	reports []models.Report
	nextID  uint
	failAll bool
}

func newMockReportRepo() *mockReportRepo {
	return &mockReportRepo{nextID: 1}
}

func (m *mockReportRepo) Create(_ context.Context, report *models.Report) error {
	if m.failAll {
		return fmt.Errorf("storage down")
	}
	report.ID = m.nextID
	m.nextID++
	m.reports = append(m.reports, *report)
	return nil
}

func (m *mockReportRepo) sorted(filter func(models.Report) bool) []models.Report {
	var result []models.Report
	for _, r := range m.reports {
		if filter(r) {
			result = append(result, r)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result
}

func inRange(r models.Report, start, end *time.Time) bool {
	if start != nil && r.Timestamp.Before(*start) {
		return false
	}
	if end != nil && r.Timestamp.After(*end) {
		return false
	}
	return true
}

func (m *mockReportRepo) FindAll(_ context.Context) ([]models.Report, error) {
	if m.failAll {
		return nil, fmt.Errorf("storage down")
	}
	return m.sorted(func(models.Report) bool { return true }), nil
}

func (m *mockReportRepo) FindByType(_ context.Context, reportType models.ReportType) ([]models.Report, error) {
	return m.sorted(func(r models.Report) bool { return r.ReportType == reportType }), nil
}

func (m *mockReportRepo) FindByRange(_ context.Context, start, end *time.Time) ([]models.Report, error) {
	if m.failAll {
		return nil, fmt.Errorf("storage down")
	}
	return m.sorted(func(r models.Report) bool { return inRange(r, start, end) }), nil
}

func (m *mockReportRepo) FindByTypeAndRange(_ context.Context, reportType models.ReportType, start, end *time.Time) ([]models.Report, error) {
	return m.sorted(func(r models.Report) bool {
		return r.ReportType == reportType && inRange(r, start, end)
	}), nil
}

func (m *mockReportRepo) DeleteAll(_ context.Context) error {
	m.reports = nil
	return nil
}

// --- Mock Recorder ---

type recordedEvent struct {
	reportType models.ReportType
	entityID   uint
	entityName string
	count      int
}

type mockRecorder struct {
	events  []recordedEvent
	failAll bool
}

func (m *mockRecorder) Record(_ context.Context, reportType models.ReportType, entityID uint, entityName string, count int) error {
	if m.failAll {
		return fmt.Errorf("report log down")
	}
	m.events = append(m.events, recordedEvent{reportType, entityID, entityName, count})
	return nil
}

func (m *mockRecorder) ofType(reportType models.ReportType) []recordedEvent {
	var result []recordedEvent
	for _, e := range m.events {
		if e.reportType == reportType {
			result = append(result, e)
		}
	}
	return result
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	published []*models.Report
}

func (m *mockPublisher) PublishReport(_ context.Context, report *models.Report) error {
	m.published = append(m.published, report)
	return nil
}

// --- Mock UserRepository ---

type mockUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *mockUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) FindAll(_ context.Context) ([]models.User, error) {
	ids := make([]uint, 0, len(m.users))
	for id := range m.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]models.User, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.users[id])
	}
	return result, nil
}

func (m *mockUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func (m *mockUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, id)
	return nil
}
