package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"ecovision/internal/schema"
)

type storageMock struct {
	getFunc func(ctx context.Context, indicators map[string]schema.Reading) ([]schema.Reading, error)
}

func (m *storageMock) Get(ctx context.Context, indicators map[string]schema.Reading) ([]schema.Reading, error) {
	return m.getFunc(ctx, indicators)
}

func TestService_Get(t *testing.T) {
	co2 := schema.Reading{IndicatorId: "co2", Priority: 1, Measurement: schema.Measurement{Value: 421, Unit: "ppm"}}
	temperature := schema.Reading{IndicatorId: "temperature", Priority: 2, Measurement: schema.Measurement{Value: 1.2, Unit: "°C"}}
	co2Dup := schema.Reading{IndicatorId: "co2", Priority: 5}

	testCases := []struct {
		name           string
		input          []schema.Reading
		storageFunc    func(ctx context.Context, ids map[string]schema.Reading) ([]schema.Reading, error)
		expectedOutput []schema.Reading
		expectedError  string
	}{
		{
			name:           "Empty input returns empty slice",
			input:          []schema.Reading{},
			expectedOutput: []schema.Reading{},
		},
		{
			name:  "Unique indicators successful retrieval",
			input: []schema.Reading{co2, temperature},
			storageFunc: func(ctx context.Context, ids map[string]schema.Reading) ([]schema.Reading, error) {
				if len(ids) != 2 {
					return nil, errors.New("unexpected number of keys in map")
				}
				return []schema.Reading{co2, temperature}, nil
			},
			expectedOutput: []schema.Reading{co2, temperature},
		},
		{
			name:  "Duplicate indicators are removed, first wins",
			input: []schema.Reading{co2, co2Dup},
			storageFunc: func(ctx context.Context, ids map[string]schema.Reading) ([]schema.Reading, error) {
				if len(ids) != 1 || ids["co2"].Priority != 1 {
					return nil, errors.New("duplicates were not removed")
				}
				return []schema.Reading{co2}, nil
			},
			expectedOutput: []schema.Reading{co2},
		},
		{
			name:  "Storage returns error",
			input: []schema.Reading{co2},
			storageFunc: func(ctx context.Context, ids map[string]schema.Reading) ([]schema.Reading, error) {
				return nil, errors.New("storage error")
			},
			expectedError: "storage error",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := New(&storageMock{getFunc: tc.storageFunc})

			output, err := svc.Get(context.Background(), tc.input)
			if tc.expectedError != "" {
				if err == nil || !strings.Contains(err.Error(), tc.expectedError) {
					t.Fatalf("expected error containing %q, got %v", tc.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(output, tc.expectedOutput) {
				t.Errorf("expected output %v, got %v", tc.expectedOutput, output)
			}
		})
	}
}

func TestRemoveDuplicates(t *testing.T) {
	a := schema.Reading{IndicatorId: "a", Priority: 1}
	aDup := schema.Reading{IndicatorId: "a", Priority: 2}
	b := schema.Reading{IndicatorId: "b", Priority: 2}

	testCases := []struct {
		name     string
		input    []schema.Reading
		expected []schema.Reading
	}{
		{name: "No duplicates", input: []schema.Reading{a, b}, expected: []schema.Reading{a, b}},
		{name: "With duplicates", input: []schema.Reading{a, aDup, b}, expected: []schema.Reading{a, b}},
		{name: "All duplicates", input: []schema.Reading{a, aDup}, expected: []schema.Reading{a}},
		{name: "Empty input", input: []schema.Reading{}, expected: []schema.Reading{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			output := removeDuplicates(tc.input)
			if !reflect.DeepEqual(output, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, output)
			}
		})
	}
}
