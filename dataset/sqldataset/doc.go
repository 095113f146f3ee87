/*
Package sqldataset provides implementations of dataset.Dataset that use
SQL databases as backends.

Instances are stored on a single samples table with one integer column
per attribute holding the nominal value code, and NULL for missing
values. SQL dialect differences are confined to Adapter
implementations: see the sqlite3adapter and pgadapter subpackages.
*/
package sqldataset
