// Package model holds the gathered set of bound classes.
//
// Gathering is two-phase. Every input class is registered in a Table first;
// once the table is sealed, cross-class questions (assignability, type
// references) are answered against the complete set.
package model
