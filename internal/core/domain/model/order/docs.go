// Package order provides the laundry order aggregate and the values it owns.
//
// The package includes:
//   - Order: the aggregate root holding token, customer, address snapshot,
//     garment lines, lifecycle status and audit stamps
//   - Item: a garment line with its own service type and status
//   - Status, ItemStatus and ServiceType: canonical enums with the persisted
//     vocabulary (see ParseStatus and friends)
//   - Token: the human-readable order reference ORD<yyyyMMdd>-<suffix>
//
// Key business rules:
//   - Status only moves forward (skips allowed) or to Cancelled; Cancelled and
//     Delivered are final and Completed only accepts Delivered
//   - Entering PickedUp, Completed, Delivered or Cancelled stamps the order once
//   - Lines follow the order: a confirmed order lifts pending lines, a finished
//     order completes them and a cancelled order cancels them
//   - An order never holds two lines with the same (category, product) pair
package order
