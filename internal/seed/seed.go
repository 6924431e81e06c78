// Package seed fills an empty product store with sample data.
package seed

import (
	"context"
	"errors"
	"fmt"

	"inventory/internal/models"
	"inventory/internal/repositories"

	"go.uber.org/zap"
)

// Products returns the sample catalogue in insertion order.
func Products() []models.Product {
	return []models.Product{
		{Article: "NB-001", Name: "Хлеб", Price: 899, Quantity: 5},
		{Article: "NB-002", Name: "Молоко", Price: 1200, Quantity: 10},
		{Article: "NB-003", Name: "Яйца", Price: 1500, Quantity: 20},
		{Article: "NB-004", Name: "Масло", Price: 2500, Quantity: 8},
		{Article: "NB-005", Name: "Сахар", Price: 1800, Quantity: 15},
		{Article: "NB-006", Name: "Соль", Price: 450, Quantity: 30},
		{Article: "NB-007", Name: "Мука", Price: 2200, Quantity: 12},
		{Article: "NB-008", Name: "Макароны", Price: 950, Quantity: 25},
		{Article: "NB-009", Name: "Рис", Price: 2100, Quantity: 18},
		{Article: "NB-010", Name: "Гречка", Price: 1900, Quantity: 14},
		{Article: "NB-011", Name: "Овсянка", Price: 1750, Quantity: 22},
		{Article: "NB-012", Name: "Пшено", Price: 1650, Quantity: 16},
		{Article: "NB-013", Name: "Перловка", Price: 1450, Quantity: 19},
		{Article: "NB-014", Name: "Фасоль", Price: 2800, Quantity: 13},
		{Article: "NB-015", Name: "Горох", Price: 1950, Quantity: 17},
		{Article: "NB-016", Name: "Чечевица", Price: 3200, Quantity: 11},
		{Article: "NB-017", Name: "Огурцы", Price: 850, Quantity: 35},
		{Article: "NB-018", Name: "Помидоры", Price: 1200, Quantity: 28},
		{Article: "NB-019", Name: "Лук", Price: 650, Quantity: 40},
		{Article: "NB-020", Name: "Чеснок", Price: 1500, Quantity: 32},
		{Article: "NB-021", Name: "Морковь", Price: 750, Quantity: 38},
		{Article: "NB-022", Name: "Картофель", Price: 550, Quantity: 50},
		{Article: "NB-023", Name: "Капуста", Price: 680, Quantity: 30},
		{Article: "NB-024", Name: "Свекла", Price: 720, Quantity: 25},
		{Article: "NB-025", Name: "Перец", Price: 1100, Quantity: 20},
		{Article: "NB-026", Name: "Бананы", Price: 1350, Quantity: 24},
		{Article: "NB-027", Name: "Яблоки", Price: 980, Quantity: 33},
		{Article: "NB-028", Name: "Апельсины", Price: 1250, Quantity: 27},
		{Article: "NB-029", Name: "Мандарины", Price: 1400, Quantity: 29},
		{Article: "NB-030", Name: "Груши", Price: 1150, Quantity: 21},
		{Article: "NB-031", Name: "Виноград", Price: 1800, Quantity: 18},
		{Article: "NB-032", Name: "Клубника", Price: 2200, Quantity: 15},
		{Article: "NB-033", Name: "Малина", Price: 2800, Quantity: 12},
		{Article: "NB-034", Name: "Черника", Price: 3200, Quantity: 10},
		{Article: "NB-035", Name: "Сметана", Price: 1650, Quantity: 22},
		{Article: "NB-036", Name: "Творог", Price: 1850, Quantity: 19},
		{Article: "NB-037", Name: "Сыр", Price: 3200, Quantity: 14},
		{Article: "NB-038", Name: "Йогурт", Price: 950, Quantity: 26},
		{Article: "NB-039", Name: "Кефир", Price: 880, Quantity: 28},
		{Article: "NB-040", Name: "Ряженка", Price: 920, Quantity: 23},
		{Article: "NB-041", Name: "Колбаса", Price: 2800, Quantity: 16},
		{Article: "NB-042", Name: "Сосиски", Price: 1850, Quantity: 20},
		{Article: "NB-043", Name: "Курица", Price: 2200, Quantity: 17},
		{Article: "NB-044", Name: "Говядина", Price: 4500, Quantity: 12},
		{Article: "NB-045", Name: "Свинина", Price: 3800, Quantity: 13},
		{Article: "NB-046", Name: "Рыба", Price: 3200, Quantity: 15},
		{Article: "NB-047", Name: "Консервы", Price: 850, Quantity: 30},
		{Article: "NB-048", Name: "Тунец", Price: 1450, Quantity: 18},
		{Article: "NB-049", Name: "Лосось", Price: 5800, Quantity: 8},
		{Article: "NB-050", Name: "Креветки", Price: 4200, Quantity: 11},
		{Article: "NB-051", Name: "Чай", Price: 450, Quantity: 45},
		{Article: "NB-052", Name: "Кофе", Price: 1850, Quantity: 25},
		{Article: "NB-053", Name: "Какао", Price: 750, Quantity: 32},
		{Article: "NB-054", Name: "Соки", Price: 980, Quantity: 28},
		{Article: "NB-055", Name: "Вода", Price: 450, Quantity: 60},
		{Article: "NB-056", Name: "Лимонад", Price: 680, Quantity: 35},
		{Article: "NB-057", Name: "Печенье", Price: 1250, Quantity: 22},
		{Article: "NB-058", Name: "Шоколад", Price: 1850, Quantity: 19},
		{Article: "NB-059", Name: "Конфеты", Price: 1450, Quantity: 24},
		{Article: "NB-060", Name: "Мед", Price: 3200, Quantity: 13},
		{Article: "NB-061", Name: "Варенье", Price: 1650, Quantity: 17},
		{Article: "NB-062", Name: "Орехи", Price: 2800, Quantity: 14},
		{Article: "NB-063", Name: "Сухофрукты", Price: 2200, Quantity: 16},
		{Article: "NB-064", Name: "Семечки", Price: 850, Quantity: 29},
		{Article: "NB-065", Name: "Масло растительное", Price: 1250, Quantity: 21},
		{Article: "NB-066", Name: "Уксус", Price: 550, Quantity: 38},
		{Article: "NB-067", Name: "Майонез", Price: 980, Quantity: 26},
		{Article: "NB-068", Name: "Кетчуп", Price: 750, Quantity: 31},
		{Article: "NB-069", Name: "Горчица", Price: 650, Quantity: 33},
		{Article: "NB-070", Name: "Хрен", Price: 850, Quantity: 27},	}
}

// Run inserts the sample catalogue when the store is empty and returns the
// number of products created. A non-empty store is left untouched.
func Run(ctx context.Context, repo repositories.ProductRepository, log *zap.Logger) (int, error) {
	total, err := repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	if total > 0 {
		log.Debug("seed skipped, store not empty", zap.Int64("total", total))
		return 0, nil
	}

	created := 0
	for _, p := range Products() {
		product := p
		if err := repo.Create(ctx, &product); err != nil {
			// Another instance may be seeding the same store.
			if errors.Is(err, repositories.ErrArticleConflict) {
				continue
			}
			return created, fmt.Errorf("failed to seed product %s: %w", p.Article, err)
		}
		created++
	}

	log.Info("seeded products", zap.Int("count", created))
	return created, nil
}
