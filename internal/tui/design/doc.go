// Package design defines the color palette and cell theme of the dashboard.
package design
