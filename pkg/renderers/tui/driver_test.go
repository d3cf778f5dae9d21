package tui

import (
	"context"
	"errors"
)

type stubDriver struct {
	inputs    []string
	selectIdx []int
	multiIdx  [][]int
	confirm   []bool
	textAreas []string

	infoMessages []string
	inputCfgs    []InputConfig
	selectCfgs   []SelectConfig
	multiCfgs    []SelectConfig

	inputPos   int
	selectPos  int
	multiPos   int
	confirmPos int
	textPos    int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.inputCfgs = append(s.inputCfgs, cfg)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.selectCfgs = append(s.selectCfgs, cfg)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.multiCfgs = append(s.multiCfgs, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) TextArea(_ context.Context, _ TextAreaConfig) (string, error) {
	if s.textPos >= len(s.textAreas) {
		return "", errors.New("no textarea scripted")
	}
	val := s.textAreas[s.textPos]
	s.textPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}
