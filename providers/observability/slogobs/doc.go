// Package slogobs provides an observability.Provider backed by log/slog.
//
// [New] builds an [Observer] whose handler writes compact single-line records
// or JSON objects. Format and level come from SPANSEEK_LOG_FORMAT and
// SPANSEEK_LOG_LEVEL (falling back to LOG_FORMAT and LOG_LEVEL) unless set
// with [WithFormat] and [WithLevel]. [WithLogger] bypasses the custom handler.
package slogobs
