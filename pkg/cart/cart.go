// Package cart содержит клиентскую корзину: упорядоченный набор позиций,
// уникальных по паре (товар, объём), который сохраняется в хранилище
// клиента после каждого изменения.
package cart

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Slot - ключ, под которым корзина лежит в хранилище клиента
const Slot = "cart"

// Item - позиция корзины. Name, Price и Image фиксируются в момент добавления
// и не следят за изменением цены товара в каталоге.
type Item struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"` // в минимальных единицах валюты (пайсы)
	Image    string `json:"image"`
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
}

// Totals - производные значения, считаются заново при каждом вызове
type Totals struct {
	Subtotal  int64 `json:"subtotal"`
	ItemCount int   `json:"itemCount"`
}

// Engine - корзина одной клиентской сессии
type Engine struct {
	mu      sync.Mutex
	storage Storage
	items   []Item
}

// New восстанавливает корзину из хранилища. Отсутствующие или битые данные
// дают пустую корзину, ошибка загрузки наружу не возвращается.
func New(storage Storage) *Engine {
	e := &Engine{storage: storage}
	e.items = load(storage)
	return e
}

func load(storage Storage) []Item {
	data, err := storage.Load(Slot)
	if err != nil || len(data) == 0 {
		return nil
	}

	var stored []Item
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil
	}

	// Повторяем инварианты на случай, если данные правили руками
	items := make([]Item, 0, len(stored))
	for _, item := range stored {
		if item.Quantity <= 0 {
			continue
		}
		if i := indexOf(items, item.ID, item.Size); i >= 0 {
			items[i].Quantity += item.Quantity
			continue
		}
		items = append(items, item)
	}
	return items
}

// Add добавляет позицию. Если (ID, Size) уже в корзине, складываются только
// количества, снимок цены/названия/картинки остаётся от первого добавления.
func (e *Engine) Add(item Item) error {
	if item.Quantity <= 0 {
		return fmt.Errorf("cart: quantity must be positive, got %d", item.Quantity)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if i := indexOf(e.items, item.ID, item.Size); i >= 0 {
		e.items[i].Quantity += item.Quantity
	} else {
		e.items = append(e.items, item)
	}
	return e.persist()
}

// Remove удаляет позицию; отсутствие позиции не ошибка
func (e *Engine) Remove(id int64, size string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.remove(id, size)
	return e.persist()
}

// SetQuantity заменяет количество на месте; quantity <= 0 удаляет позицию
func (e *Engine) SetQuantity(id int64, size string, quantity int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if quantity <= 0 {
		e.remove(id, size)
		return e.persist()
	}

	if i := indexOf(e.items, id, size); i >= 0 {
		e.items[i].Quantity = quantity
	}
	return e.persist()
}

func (e *Engine) Clear() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil
	return e.persist()
}

// Items возвращает копию позиций в порядке добавления
func (e *Engine) Items() []Item {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Item, len(e.items))
	copy(out, e.items)
	return out
}

func (e *Engine) Totals() Totals {
	e.mu.Lock()
	defer e.mu.Unlock()

	var t Totals
	for _, item := range e.items {
		t.Subtotal += item.Price * int64(item.Quantity)
		t.ItemCount += item.Quantity
	}
	return t
}

func (e *Engine) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.items) == 0
}

func (e *Engine) remove(id int64, size string) {
	if i := indexOf(e.items, id, size); i >= 0 {
		e.items = append(e.items[:i], e.items[i+1:]...)
	}
}

// persist пишет коллекцию целиком. Состояние в памяти уже обновлено,
// при ошибке записи оно не откатывается.
func (e *Engine) persist() error {
	items := e.items
	if items == nil {
		items = []Item{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := e.storage.Save(Slot, data); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}

func indexOf(items []Item, id int64, size string) int {
	for i := range items {
		if items[i].ID == id && items[i].Size == size {
			return i
		}
	}
	return -1
}
