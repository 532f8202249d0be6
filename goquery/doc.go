// Package goquery implements recipe extraction from HTML documents using
// github.com/PuerkitoBio/goquery.
package goquery
