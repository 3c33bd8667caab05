// Package models contains the GORM persistence models of the local cache.
// Each model maps one table and converts to and from its domain type with
// ToDomain and a ...FromDomain constructor; domain packages stay free of ORM tags.
package models
