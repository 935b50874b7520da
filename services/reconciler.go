package services

import "price-watcher/models"

// Reconciler compares a fresh snapshot against the best-price record set.
// It performs no I/O and every slice it returns holds fresh copies.
type Reconciler struct {
	// AppendNewCodes adds codes seen for the first time after the initial
	// run to the end of the best-price set. When false, such codes are
	// reported as improved but never enter the best-price set.
	AppendNewCodes bool
}

// NewReconciler creates a Reconciler.
func NewReconciler(appendNewCodes bool) *Reconciler {
	return &Reconciler{AppendNewCodes: appendNewCodes}
}

// ReconcileResult holds both outputs of one reconciliation.
type ReconcileResult struct {
	Improved []models.Item
	NextBest []models.Item
}

// Reconcile runs ImprovedItems followed by NextBestSet.
func (r *Reconciler) Reconcile(latest, priorBest []models.Item) ReconcileResult {
	improved := ImprovedItems(latest, priorBest)
	return ReconcileResult{
		Improved: improved,
		NextBest: r.NextBestSet(improved, priorBest),
	}
}

// ImprovedItems returns, in latest's order, every latest item whose code is
// absent from priorBest or whose price is strictly lower than the recorded one.
func ImprovedItems(latest, priorBest []models.Item) []models.Item {
	best := indexByCode(priorBest)

	improved := make([]models.Item, 0)
	for _, it := range latest {
		prior, seen := best[it.Code]
		if !seen || it.Price.LessThan(prior.Price) {
			improved = append(improved, it.Clone())
		}
	}
	return improved
}

// NextBestSet builds the best-price set that follows priorBest once the
// improved items are applied.
//
// An empty priorBest is bootstrapped from improved as is. Otherwise the
// result follows priorBest's order; a prior record whose code was improved
// takes the improved price but keeps its own code and name.
func (r *Reconciler) NextBestSet(improved, priorBest []models.Item) []models.Item {
	if len(priorBest) == 0 {
		next := make([]models.Item, 0, len(improved))
		for _, it := range improved {
			next = append(next, it.Clone())
		}
		return next
	}

	better := indexByCode(improved)

	next := make([]models.Item, 0, len(priorBest))
	for _, prior := range priorBest {
		if it, ok := better[prior.Code]; ok {
			next = append(next, prior.WithPrice(it.Price))
			continue
		}
		next = append(next, prior.Clone())
	}

	if r.AppendNewCodes {
		known := indexByCode(priorBest)
		for _, it := range improved {
			if _, ok := known[it.Code]; !ok {
				next = append(next, it.Clone())
			}
		}
	}

	return next
}

// indexByCode maps each code to its first occurrence in items.
func indexByCode(items []models.Item) map[int]models.Item {
	idx := make(map[int]models.Item, len(items))
	for _, it := range items {
		if _, dup := idx[it.Code]; !dup {
			idx[it.Code] = it
		}
	}
	return idx
}
