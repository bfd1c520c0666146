/*
Package txn implements the transactor described by the storage model: the
compound operations that turn one Snapshot into the next, plus the typed
error kinds they fail with.

Add, Update and Remove each build an Op — a staged edit curried over
everything but the snapshot it applies to and the logical time the
enclosing Transact has committed to. Transact applies a sequence of Op
values against a Snapshot as a single unit: the first failure aborts the
whole sequence and returns the original snapshot unchanged, and on success
the result is stamped with exactly one new logical time no matter how
many Ops ran.

This package never touches a Connection. pkg/conn supplies the atomic
compare-and-set retry loop that decides which Snapshot a Transact call
actually runs against and commits the result.

# See also

  - pkg/storage for the Snapshot value these operations transform
  - pkg/conn for the commit loop that calls Transact
  - pkg/types for the Value/Entity/Attribute model being edited
*/
package txn
