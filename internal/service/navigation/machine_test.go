package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectSection(t *testing.T) {
	t.Run("receipts skip the district menu", func(t *testing.T) {
		step := SelectSection(3, SectionIn)
		assert.Equal(t, LevelProducts, step.Level)
		assert.Equal(t, FilterPath{WarehouseID: 3, Section: SectionIn}, step.Path)
	})

	t.Run("issues and reports go through districts", func(t *testing.T) {
		for _, section := range []Section{SectionOut, SectionReport} {
			step := SelectSection(3, section)
			assert.Equal(t, LevelDistricts, step.Level, "section %s", section)
			assert.Equal(t, FilterPath{WarehouseID: 3, Section: section}, step.Path)
		}
	})
}

func TestResolve(t *testing.T) {
	path := FilterPath{WarehouseID: 3, Section: SectionOut, DistrictID: 7, ProductID: 12, Page: 4}

	t.Run("district selection lands on products", func(t *testing.T) {
		step, err := Resolve(Token{Action: ActionSelectDistrict, Path: FilterPath{WarehouseID: 3, Section: SectionOut, DistrictID: 7}})
		require.NoError(t, err)
		assert.Equal(t, LevelProducts, step.Level)
	})

	t.Run("product selection opens page one", func(t *testing.T) {
		step, err := Resolve(Token{Action: ActionSelectProduct, Path: FilterPath{WarehouseID: 3, Section: SectionOut, DistrictID: 7, ProductID: 12}})
		require.NoError(t, err)
		assert.Equal(t, LevelMovements, step.Level)
		assert.Equal(t, 1, step.Path.Page)
		assert.Equal(t, 12, step.Path.ProductID)
	})

	t.Run("page token keeps its page", func(t *testing.T) {
		step, err := Resolve(Token{Action: ActionMovementsPage, Path: path})
		require.NoError(t, err)
		assert.Equal(t, LevelMovements, step.Level)
		assert.Equal(t, 4, step.Path.Page)
	})

	t.Run("back transitions keep the prior filters", func(t *testing.T) {
		step, err := Resolve(Token{Action: ActionBackToProducts, Path: FilterPath{WarehouseID: 3, Section: SectionOut, DistrictID: 7}})
		require.NoError(t, err)
		assert.Equal(t, LevelProducts, step.Level)
		assert.Equal(t, 7, step.Path.DistrictID)

		step, err = Resolve(Token{Action: ActionBackToDistricts, Path: FilterPath{WarehouseID: 3, Section: SectionOut}})
		require.NoError(t, err)
		assert.Equal(t, LevelDistricts, step.Level)

		step, err = Resolve(Token{Action: ActionBackToSections, Path: FilterPath{WarehouseID: 3}})
		require.NoError(t, err)
		assert.Equal(t, LevelSections, step.Level)
		assert.Equal(t, 3, step.Path.WarehouseID)
	})

	t.Run("non-navigation actions do not resolve", func(t *testing.T) {
		for _, action := range []Action{ActionExport, ActionFarmersPage, ActionContractsBack} {
			_, err := Resolve(Token{Action: action})
			assert.ErrorIs(t, err, ErrMalformedToken, "action %s", action)
		}
	})
}

func TestPaginate(t *testing.T) {
	path := FilterPath{WarehouseID: 3, Section: SectionOut, DistrictID: 7, ProductID: 12, Page: 2}

	assert.Equal(t, 3, Paginate(path, 1).Page)
	assert.Equal(t, 1, Paginate(path, -1).Page)
	assert.Equal(t, 1, Paginate(path, -5).Page, "pages clamp at one")
	assert.Equal(t, 2, path.Page, "input path is not mutated")
}

func TestSessionStore(t *testing.T) {
	store := NewSessionStore()

	_, err := store.Warehouse(42)
	assert.ErrorIs(t, err, ErrNoWarehouseSelected)

	store.SetWarehouse(42, 3)
	id, err := store.Warehouse(42)
	require.NoError(t, err)
	assert.Equal(t, 3, id)

	t.Run("selection is per user", func(t *testing.T) {
		_, err := store.Warehouse(43)
		assert.ErrorIs(t, err, ErrNoWarehouseSelected)
	})

	t.Run("reselect replaces", func(t *testing.T) {
		store.SetWarehouse(42, 9)
		id, err := store.Warehouse(42)
		require.NoError(t, err)
		assert.Equal(t, 9, id)
	})

	t.Run("clear forgets", func(t *testing.T) {
		store.Clear(42)
		_, err := store.Warehouse(42)
		assert.ErrorIs(t, err, ErrNoWarehouseSelected)
	})
}
