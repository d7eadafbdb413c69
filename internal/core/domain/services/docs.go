// Package services provides domain services for the order lifecycle. They hold
// rules that span more than one aggregate or that need collaborators such as a
// customer directory or a token registry.
//
// The package includes:
//   - ItemMerger: validates requested lines and folds duplicates together
//   - StatusNormalizer: translates stored and client vocabulary into enums
//   - TokenGenerator: issues unique human-facing order tokens
//   - CustomerResolver: decides whom an order belongs to and its initial status
//   - ItemReconciler: diffs requested lines against stored ones
//   - OrderLifecycle: applies validated updates to an order
package services
