package cart

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// failingStorage отдаёт заданные данные и ломается на записи
type failingStorage struct {
	data []byte
}

func (s *failingStorage) Load(string) ([]byte, error) { return s.data, nil }
func (s *failingStorage) Save(string, []byte) error   { return errors.New("disk full") }

type EngineTestSuite struct {
	suite.Suite
	storage *MemoryStorage
	engine  *Engine
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}

func (s *EngineTestSuite) SetupTest() {
	s.storage = NewMemoryStorage()
	s.engine = New(s.storage)
}

func (s *EngineTestSuite) stored() []Item {
	data, err := s.storage.Load(Slot)
	s.Require().NoError(err)

	var items []Item
	s.Require().NoError(json.Unmarshal(data, &items))
	return items
}

func jasmine(size string, price int64, qty int) Item {
	return Item{ID: 1, Name: "Moonlit Jasmine", Price: price, Image: "jasmine.jpg", Quantity: qty, Size: size}
}

// ===================== Add =====================

func (s *EngineTestSuite) TestAdd_MergesSameKey() {
	s.NoError(s.engine.Add(jasmine("50ml", 100, 1)))
	s.NoError(s.engine.Add(jasmine("50ml", 100, 2)))

	items := s.engine.Items()
	s.Len(items, 1)
	s.Equal(3, items[0].Quantity)
	s.Equal(int64(300), s.engine.Totals().Subtotal)
}

func (s *EngineTestSuite) TestAdd_KeepsFirstSnapshot() {
	s.NoError(s.engine.Add(Item{ID: 7, Name: "Old name", Price: 500, Image: "old.jpg", Quantity: 1, Size: "30ml"}))
	s.NoError(s.engine.Add(Item{ID: 7, Name: "New name", Price: 900, Image: "new.jpg", Quantity: 4, Size: "30ml"}))

	items := s.engine.Items()
	s.Require().Len(items, 1)
	s.Equal("Old name", items[0].Name)
	s.Equal(int64(500), items[0].Price)
	s.Equal("old.jpg", items[0].Image)
	s.Equal(5, items[0].Quantity)
}

func (s *EngineTestSuite) TestAdd_DifferentSizesAreSeparateAndOrdered() {
	s.NoError(s.engine.Add(jasmine("100ml", 300, 1)))
	s.NoError(s.engine.Add(jasmine("30ml", 100, 1)))
	s.NoError(s.engine.Add(Item{ID: 2, Name: "Royal Oud", Price: 200, Quantity: 1, Size: "30ml"}))

	items := s.engine.Items()
	s.Require().Len(items, 3)
	s.Equal("100ml", items[0].Size)
	s.Equal("30ml", items[1].Size)
	s.Equal(int64(2), items[2].ID)
}

func (s *EngineTestSuite) TestAdd_RejectsNonPositiveQuantity() {
	err := s.engine.Add(jasmine("50ml", 100, 0))

	s.Error(err)
	s.True(s.engine.IsEmpty())
}

func (s *EngineTestSuite) TestAdd_PersistsAfterEveryMutation() {
	s.NoError(s.engine.Add(jasmine("50ml", 100, 2)))

	s.Equal(s.engine.Items(), s.stored())
}

// ===================== Remove / SetQuantity / Clear =====================

func (s *EngineTestSuite) TestRemove_MissingIsNoop() {
	s.NoError(s.engine.Add(jasmine("50ml", 100, 1)))

	s.NoError(s.engine.Remove(1, "100ml"))
	s.NoError(s.engine.Remove(99, "50ml"))

	s.Len(s.engine.Items(), 1)
}

func (s *EngineTestSuite) TestRemove_DeletesEntry() {
	s.NoError(s.engine.Add(jasmine("50ml", 100, 1)))
	s.NoError(s.engine.Remove(1, "50ml"))

	s.True(s.engine.IsEmpty())
	s.Empty(s.stored())
}

func (s *EngineTestSuite) TestSetQuantity_ZeroOrNegativeRemoves() {
	for _, q := range []int{0, -3} {
		s.NoError(s.engine.Add(jasmine("50ml", 100, 2)))

		s.NoError(s.engine.SetQuantity(1, "50ml", q))

		s.True(s.engine.IsEmpty(), "quantity %d", q)
	}
}

func (s *EngineTestSuite) TestSetQuantity_ReplacesInPlace() {
	s.NoError(s.engine.Add(jasmine("30ml", 100, 1)))
	s.NoError(s.engine.Add(jasmine("50ml", 150, 1)))
	s.NoError(s.engine.Add(jasmine("100ml", 250, 1)))

	s.NoError(s.engine.SetQuantity(1, "50ml", 7))

	items := s.engine.Items()
	s.Equal("50ml", items[1].Size)
	s.Equal(7, items[1].Quantity)
	s.Equal(int64(100+150*7+250), s.engine.Totals().Subtotal)
}

func (s *EngineTestSuite) TestSetQuantity_MissingIsNoop() {
	s.NoError(s.engine.SetQuantity(5, "50ml", 3))

	s.True(s.engine.IsEmpty())
}

func (s *EngineTestSuite) TestClear() {
	s.NoError(s.engine.Add(jasmine("50ml", 100, 1)))
	s.NoError(s.engine.Clear())

	s.True(s.engine.IsEmpty())
	s.Equal(Totals{}, s.engine.Totals())
	s.Empty(s.stored())
}

// ===================== Totals =====================

func (s *EngineTestSuite) TestTotals_RecomputedOnEachCall() {
	s.NoError(s.engine.Add(jasmine("50ml", 649900, 1)))
	s.Equal(Totals{Subtotal: 649900, ItemCount: 1}, s.engine.Totals())

	s.NoError(s.engine.Add(Item{ID: 2, Name: "Royal Oud", Price: 899900, Quantity: 2, Size: "100ml"}))
	s.Equal(Totals{Subtotal: 649900 + 2*899900, ItemCount: 3}, s.engine.Totals())
}

func (s *EngineTestSuite) TestItems_ReturnsCopy() {
	s.NoError(s.engine.Add(jasmine("50ml", 100, 1)))

	items := s.engine.Items()
	items[0].Quantity = 99

	s.Equal(1, s.engine.Items()[0].Quantity)
}

// ===================== Load =====================

func (s *EngineTestSuite) TestNew_ReloadReconstructsState() {
	s.NoError(s.engine.Add(jasmine("50ml", 100, 2)))
	s.NoError(s.engine.Add(Item{ID: 3, Name: "Velvet Rose", Price: 529900, Quantity: 1, Size: "30ml"}))

	reloaded := New(s.storage)

	s.Equal(s.engine.Items(), reloaded.Items())
	s.Equal(s.engine.Totals(), reloaded.Totals())
}

func TestNew_CorruptDataYieldsEmptyCart(t *testing.T) {
	for name, raw := range map[string]string{
		"garbage":      "{not json",
		"wrong shape":  `{"id": 1}`,
		"wrong types":  `[{"id": "one", "quantity": "many"}]`,
		"empty string": "",
	} {
		storage := NewMemoryStorage()
		require.NoError(t, storage.Save(Slot, []byte(raw)))

		engine := New(storage)

		assert.True(t, engine.IsEmpty(), name)
		assert.Equal(t, Totals{}, engine.Totals(), name)
	}
}

func TestNew_DropsInvalidStoredEntries(t *testing.T) {
	storage := NewMemoryStorage()
	raw := `[
		{"id":1,"name":"A","price":100,"image":"","quantity":1,"size":"30ml"},
		{"id":2,"name":"B","price":100,"image":"","quantity":0,"size":"30ml"},
		{"id":1,"name":"A","price":100,"image":"","quantity":2,"size":"30ml"}
	]`
	require.NoError(t, storage.Save(Slot, []byte(raw)))

	engine := New(storage)

	items := engine.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestEngine_PersistFailureKeepsMemoryState(t *testing.T) {
	engine := New(&failingStorage{})

	err := engine.Add(jasmine("50ml", 100, 1))

	assert.Error(t, err)
	assert.Len(t, engine.Items(), 1)
}
