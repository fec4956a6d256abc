package shopping

import "sort"

// StoreTotal is one store's total for everything still to buy.
type StoreTotal struct {
	Store string
	Total float64
	Items int
}

// RemainingCost sums the list price of all unchecked items across all
// categories. Checked items are already purchased and never count.
func RemainingCost(items []Item) float64 {
	var total float64
	for _, it := range items {
		if it.Checked {
			continue
		}
		total += it.Price
	}
	return total
}

// BestStores sums, per store, the price of that store's line for every
// unchecked item that lists the store, and returns the stores sorted
// ascending by total. An item without a line for a store simply does not
// contribute to that store's total.
func BestStores(items []Item) []StoreTotal {
	totals := make(map[string]*StoreTotal)
	for _, it := range items {
		if it.Checked {
			continue
		}
		for _, offer := range it.Stores {
			st, ok := totals[offer.Name]
			if !ok {
				st = &StoreTotal{Store: offer.Name}
				totals[offer.Name] = st
			}
			st.Total += offer.Price
			st.Items++
		}
	}

	result := make([]StoreTotal, 0, len(totals))
	for _, st := range totals {
		result = append(result, *st)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total < result[j].Total
		}
		return result[i].Store < result[j].Store
	})
	return result
}
