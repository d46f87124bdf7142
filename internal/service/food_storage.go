package service

import (
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/guttosm/food-storage/internal/domain/model"
	"github.com/shopspring/decimal"
)

// amountEpsilon absorbs float64 rounding when comparing summed lot amounts.
const amountEpsilon = 1e-9

// Bucket is a snapshot of all lots stored under one normalized name.
type Bucket struct {
	Key  string
	Lots []*model.Ingredient
}

// StorageOption configures a FoodStorage.
type StorageOption func(*FoodStorage)

// WithClock sets the clock used to decide which lots are expired.
func WithClock(clock model.Clock) StorageOption {
	return func(s *FoodStorage) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// FoodStorage is the inventory engine. It owns a mapping from lower-cased
// ingredient name to the lots stored under that name; a key never maps to
// an empty bucket.
//
// Lot prices are whole-lot prices. FoodStorage is not safe for concurrent
// use; PantryService serialises access for concurrent callers.
type FoodStorage struct {
	buckets map[string][]*model.Ingredient
	clock   model.Clock
}

// NewFoodStorage creates an empty inventory.
func NewFoodStorage(opts ...StorageOption) *FoodStorage {
	s := &FoodStorage{
		buckets: make(map[string][]*model.Ingredient),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the calendar date the storage currently considers today.
func (s *FoodStorage) Today() time.Time {
	return model.Today(s.clock)
}

// AddIngredient stores a copy of lot. When a stored lot under the same name has
// the same unit and expiration date, the amount and price are added to the
// first such lot instead of storing a new one.
func (s *FoodStorage) AddIngredient(lot *model.Ingredient) error {
	_, err := s.StoreIngredient(lot)
	return err
}

// StoreIngredient behaves like AddIngredient and returns a copy of the lot as
// stored, which after a merge carries the combined amount and price.
func (s *FoodStorage) StoreIngredient(lot *model.Ingredient) (*model.Ingredient, error) {
	if lot == nil {
		return nil, model.InvalidInput("Ingredient must not be nil")
	}

	key := lot.Key()
	bucket := s.buckets[key]
	for _, existing := range bucket {
		if existing.Unit() != lot.Unit() || !existing.ExpirationDate().Equal(lot.ExpirationDate()) {
			continue
		}
		if err := existing.SetAmount(existing.Amount() + lot.Amount()); err != nil {
			return nil, err
		}
		if err := existing.SetPrice(existing.Price().Add(lot.Price())); err != nil {
			return nil, err
		}
		return existing.Clone(), nil
	}

	stored := lot.Clone()
	s.buckets[key] = append(bucket, stored)
	return stored.Clone(), nil
}

// ConsumeIngredient removes amount of the named ingredient from non-expired
// lots, soonest expiration first. A partially consumed lot keeps the share of
// its price matching the share of its amount left. Every expired lot in the
// bucket is purged afterwards. Units are not compared.
func (s *FoodStorage) ConsumeIngredient(name string, amount float64) error {
	return s.consume(name, amount, "")
}

// consume takes amount from the non-expired lots of name. A non-empty unit
// restricts both the availability check and the draining to lots in that unit.
func (s *FoodStorage) consume(name string, amount float64, unit string) error {
	if model.IsBlank(name) {
		return model.InvalidInput("Ingredient name must not be blank")
	}
	if math.IsNaN(amount) || amount <= 0 {
		return model.InvalidInput("Amount to consume must be positive")
	}

	key := model.NormalizeKey(name)
	bucket, ok := s.buckets[key]
	if !ok {
		return model.NotFound("Ingredient %q not found in storage", name)
	}

	today := s.Today()
	available := usableLots(bucket, today)
	if unit != "" {
		available = slices.DeleteFunc(available, func(lot *model.Ingredient) bool { return lot.Unit() != unit })
	}
	if len(available) == 0 {
		return model.InsufficientQuantity("No ingredients available for: %s", name)
	}

	var total float64
	for _, lot := range available {
		total += lot.Amount()
	}
	if amount > total+amountEpsilon {
		return model.InsufficientQuantity("Insufficient quantity available for %s. Available: %.2f %s",
			name, total, available[0].Unit())
	}

	drained := make(map[*model.Ingredient]bool)
	remaining := amount
	for _, lot := range available {
		if remaining <= amountEpsilon {
			break
		}
		if lot.Amount() <= remaining+amountEpsilon {
			remaining -= lot.Amount()
			drained[lot] = true
			continue
		}
		left := lot.Amount() - remaining
		price := lot.Price().Mul(decimal.NewFromFloat(left)).Div(decimal.NewFromFloat(lot.Amount()))
		if err := lot.SetPrice(price); err != nil {
			return err
		}
		if err := lot.SetAmount(left); err != nil {
			return err
		}
		remaining = 0
	}

	kept := make([]*model.Ingredient, 0, len(bucket))
	for _, lot := range bucket {
		if drained[lot] || lot.IsExpired(today) {
			continue
		}
		kept = append(kept, lot)
	}
	if len(kept) == 0 {
		delete(s.buckets, key)
	} else {
		s.buckets[key] = kept
	}
	return nil
}

// AvailableAmount sums the non-expired lots of name measured in unit. A nil
// storage holds nothing.
func (s *FoodStorage) AvailableAmount(name, unit string) float64 {
	if s == nil {
		return 0
	}
	today := s.Today()
	var total float64
	for _, lot := range s.buckets[model.NormalizeKey(name)] {
		if lot.Unit() == unit && !lot.IsExpired(today) {
			total += lot.Amount()
		}
	}
	return total
}

// CanPrepareRecipe reports whether every requirement line of recipe is
// covered by non-expired lots with the same unit. It never mutates state.
func (s *FoodStorage) CanPrepareRecipe(recipe *model.Recipe) (bool, error) {
	if recipe == nil {
		return false, model.InvalidInput("Recipe must not be nil")
	}
	return coversRecipe(s, recipe), nil
}

// PrepareRecipe consumes every requirement line of recipe in order, taking
// only from lots in the line's unit. It fails without touching the inventory
// when any line cannot be covered.
func (s *FoodStorage) PrepareRecipe(recipe *model.Recipe) error {
	ok, err := s.CanPrepareRecipe(recipe)
	if err != nil {
		return err
	}
	if !ok {
		return model.InsufficientQuantity("Insufficient non-expired ingredients to prepare %s", recipe.Name())
	}
	for _, line := range recipe.Ingredients() {
		if err := s.consume(line.Name(), line.Amount(), line.Unit()); err != nil {
			return err
		}
	}
	return nil
}

// AllIngredients returns copies of every stored lot, grouped by name.
func (s *FoodStorage) AllIngredients() []*model.Ingredient {
	return s.collect(func(string, *model.Ingredient) bool { return true })
}

// ExpiredIngredients returns copies of every lot past its expiration date.
func (s *FoodStorage) ExpiredIngredients() []*model.Ingredient {
	today := s.Today()
	return s.collect(func(_ string, lot *model.Ingredient) bool { return lot.IsExpired(today) })
}

// SearchIngredientsByName returns copies of the lots whose name contains
// keyword, case-insensitively. A blank keyword matches nothing.
func (s *FoodStorage) SearchIngredientsByName(keyword string) []*model.Ingredient {
	if model.IsBlank(keyword) {
		return []*model.Ingredient{}
	}
	needle := model.NormalizeKey(keyword)
	return s.collect(func(key string, _ *model.Ingredient) bool { return strings.Contains(key, needle) })
}

// IngredientTypeCount returns the number of distinct ingredient names stored.
func (s *FoodStorage) IngredientTypeCount() int {
	return len(s.buckets)
}

// LotCount returns the number of stored lots.
func (s *FoodStorage) LotCount() int {
	n := 0
	for _, bucket := range s.buckets {
		n += len(bucket)
	}
	return n
}

// TotalValue sums the whole-lot prices of every stored lot.
func (s *FoodStorage) TotalValue() decimal.Decimal {
	total := decimal.Zero
	for _, bucket := range s.buckets {
		for _, lot := range bucket {
			total = total.Add(lot.Price())
		}
	}
	return total
}

// Buckets returns copies of all buckets ordered by key.
func (s *FoodStorage) Buckets() []Bucket {
	keys := s.sortedKeys()
	out := make([]Bucket, 0, len(keys))
	for _, key := range keys {
		lots := make([]*model.Ingredient, 0, len(s.buckets[key]))
		for _, lot := range s.buckets[key] {
			lots = append(lots, lot.Clone())
		}
		out = append(out, Bucket{Key: key, Lots: lots})
	}
	return out
}

// String renders the inventory grouped by ingredient name.
func (s *FoodStorage) String() string {
	var sb strings.Builder
	sb.WriteString("Food Storage Contents:\n")
	if len(s.buckets) == 0 {
		sb.WriteString("No ingredients in storage.")
		return sb.String()
	}
	for _, bucket := range s.Buckets() {
		sb.WriteString("Ingredient: " + bucket.Key + "\n")
		for _, lot := range bucket.Lots {
			sb.WriteString("  - " + strings.ReplaceAll(lot.PrettyPrint(), "\n", "\n    ") + "\n")
		}
	}
	return sb.String()
}

func (s *FoodStorage) collect(match func(key string, lot *model.Ingredient) bool) []*model.Ingredient {
	out := make([]*model.Ingredient, 0)
	for _, key := range s.sortedKeys() {
		for _, lot := range s.buckets[key] {
			if match(key, lot) {
				out = append(out, lot.Clone())
			}
		}
	}
	return out
}

func (s *FoodStorage) sortedKeys() []string {
	keys := make([]string, 0, len(s.buckets))
	for key := range s.buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// usableLots returns the non-expired lots of bucket ordered by expiration date.
func usableLots(bucket []*model.Ingredient, today time.Time) []*model.Ingredient {
	out := make([]*model.Ingredient, 0, len(bucket))
	for _, lot := range bucket {
		if !lot.IsExpired(today) {
			out = append(out, lot)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ExpirationDate().Before(out[j].ExpirationDate())
	})
	return out
}
