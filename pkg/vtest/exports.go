package vtest

import "github.com/vango-go/vtl/pkg/query"

// The query package is re-exported so tests need a single import.
type (
	By           = query.By
	MatchOption  = query.MatchOption
	WaitOption   = query.WaitOption
	ElementError = query.ElementError
)

var (
	ByText            = query.ByText
	ByTestID          = query.ByTestID
	ByPlaceholderText = query.ByPlaceholderText
	ByAltText         = query.ByAltText
	ByTitle           = query.ByTitle
	ByDisplayValue    = query.ByDisplayValue
	ByLabelText       = query.ByLabelText
	ByRole            = query.ByRole

	Exact      = query.Exact
	Normalizer = query.Normalizer
	Selector   = query.Selector
	Ignore     = query.Ignore
	Hidden     = query.Hidden
	Name       = query.Name
	Level      = query.Level

	Timeout   = query.Timeout
	Interval  = query.Interval
	OnTimeout = query.OnTimeout

	ErrNoElement        = query.ErrNoElement
	ErrMultipleElements = query.ErrMultipleElements
	ErrTimeout          = query.ErrTimeout
)
