/*
Package cart holds the budget-request cart shared by every storefront view.

A Store owns the line items of one browser session. Views never touch the
items directly; they call AddItem, RemoveItem, UpdateQuantity and Clear, and
read back copies through Items or Snapshot. The store keeps three rules:

  - at most one line per catalog id (adding an id again bumps its quantity)
  - quantity is at least 1 (lowering it further removes the line)
  - TotalItemCount and TotalPrice are recomputed on every mutation

Prices are optional. TotalPrice only counts lines that carry a unit price and
Snapshot.Priced tells whether any line did.

A Registry maps session ids to stores and, when given a Snapshotter, writes
each new snapshot through so carts survive restarts.

QuoteMessage and QuoteURL turn the items into the WhatsApp hand-off that ends
a budget request.
*/
package cart
