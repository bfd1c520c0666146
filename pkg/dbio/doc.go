/*
Package dbio loads the declarative dataset files the cmd/eavdb demo driver
applies to a connection. A dataset is a flat list of entities, each an id
plus a map of attribute name to declared type, cardinality, indexed flag
and value — resolved into pkg/types values and handed to pkg/txn.Add.

This package has no bearing on the core database: it exists solely to get
a demo dataset (patients, machines, test results) off disk and into
entities without hand-writing Go literals for it.
*/
package dbio
