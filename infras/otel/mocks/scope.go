package mocks

import "gooman/infras/otel"

type noopScope struct{}

func (s *noopScope) AddEvent(_ string)              {}
func (s *noopScope) End()                           {}
func (s *noopScope) SetAttribute(_ string, _ any)   {}
func (s *noopScope) SetAttributes(_ map[string]any) {}
func (s *noopScope) TraceError(_ error)             {}
func (s *noopScope) TraceIfError(_ error)           {}

func NewScope() otel.Scope {
	return &noopScope{}
}
