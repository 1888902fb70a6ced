package main

import "errors"

var (
	// ErrUnsupportedPlatform is returned by the keyboard hook outside Windows.
	ErrUnsupportedPlatform = errors.New("low-level keyboard hook requires windows")

	// ErrHookInstall wraps the OS error from SetWindowsHookExW.
	ErrHookInstall = errors.New("install keyboard hook")

	// ErrNilFilter is returned by Start when no filter is supplied.
	ErrNilFilter = errors.New("keyboard hook needs a filter")

	// ErrHookNotStarted is returned by Run before a successful Start.
	ErrHookNotStarted = errors.New("keyboard hook not started")
)
