package grpc

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/farhapartex/random-wiki/internal/handlers"
	"github.com/farhapartex/random-wiki/internal/models"
)

// InputToStruct encodes in as a RandomArticle request. Unset fields are left
// out so the server applies its own defaults.
func InputToStruct(in handlers.ArticleInput) (*structpb.Struct, error) {
	fields := map[string]any{}
	if in.Language != "" {
		fields["language"] = in.Language
	}
	if in.MinLength != nil {
		fields["min_length"] = *in.MinLength
	}
	if in.MaxLength != 0 {
		fields["max_length"] = in.MaxLength
	}
	if in.MaxRetries != 0 {
		fields["max_retries"] = in.MaxRetries
	}
	if in.DisableTruncation {
		fields["disable_truncation"] = true
	}
	return structpb.NewStruct(fields)
}

// InputFromStruct decodes a RandomArticle request; unknown keys are rejected
func InputFromStruct(s *structpb.Struct) (handlers.ArticleInput, error) {
	var in handlers.ArticleInput
	var err error

	for key, value := range s.GetFields() {
		switch key {
		case "language":
			in.Language, err = stringField(key, value)
		case "min_length":
			var n int
			if n, err = intField(key, value); err == nil {
				in.MinLength = &n
			}
		case "max_length":
			in.MaxLength, err = intField(key, value)
		case "max_retries":
			in.MaxRetries, err = intField(key, value)
		case "disable_truncation":
			in.DisableTruncation, err = boolField(key, value)
		default:
			err = fmt.Errorf("unknown field %q", key)
		}
		if err != nil {
			return handlers.ArticleInput{}, err
		}
	}

	return in, nil
}

// ResultToStruct encodes a fetch result as a RandomArticle response
func ResultToStruct(result *models.FetchResult) (*structpb.Struct, error) {
	attempts := make([]any, 0, len(result.Attempts))
	for _, a := range result.Attempts {
		errText := ""
		if a.Err != nil {
			errText = a.Err.Error()
		}
		attempts = append(attempts, map[string]any{
			"number":      a.Number,
			"title":       a.Title,
			"reason":      string(a.Reason),
			"error":       errText,
			"length":      a.Length,
			"truncated":   a.Truncated,
			"duration_ms": a.Duration.Milliseconds(),
		})
	}

	return structpb.NewStruct(map[string]any{
		"success":     result.Success,
		"text":        result.Text,
		"source_url":  result.SourceURL,
		"title":       result.Title,
		"language":    result.Language,
		"message":     result.Message,
		"duration_ms": result.Duration.Milliseconds(),
		"attempts":    attempts,
	})
}

// ResultFromStruct decodes a RandomArticle response
func ResultFromStruct(s *structpb.Struct) *models.FetchResult {
	fields := s.GetFields()

	result := models.NewFetchResult(fields["language"].GetStringValue())
	result.Success = fields["success"].GetBoolValue()
	result.Text = fields["text"].GetStringValue()
	result.SourceURL = fields["source_url"].GetStringValue()
	result.Title = fields["title"].GetStringValue()
	result.Message = fields["message"].GetStringValue()
	result.Duration = millis(fields["duration_ms"])

	for _, v := range fields["attempts"].GetListValue().GetValues() {
		af := v.GetStructValue().GetFields()
		attempt := models.Attempt{
			Number:    int(af["number"].GetNumberValue()),
			Title:     af["title"].GetStringValue(),
			Reason:    models.Reason(af["reason"].GetStringValue()),
			Length:    int(af["length"].GetNumberValue()),
			Truncated: af["truncated"].GetBoolValue(),
			Duration:  millis(af["duration_ms"]),
		}
		if msg := af["error"].GetStringValue(); msg != "" {
			attempt.Err = errors.New(msg)
		}
		result.Attempts = append(result.Attempts, attempt)
	}

	return result
}

func millis(v *structpb.Value) time.Duration {
	return time.Duration(v.GetNumberValue()) * time.Millisecond
}

func stringField(key string, v *structpb.Value) (string, error) {
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", key)
	}
	return s.StringValue, nil
}

func boolField(key string, v *structpb.Value) (bool, error) {
	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, fmt.Errorf("field %q must be a bool", key)
	}
	return b.BoolValue, nil
}

func intField(key string, v *structpb.Value) (int, error) {
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("field %q must be a number", key)
	}
	f := n.NumberValue
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("field %q must be a 32-bit integer, got %v", key, f)
	}
	return int(f), nil
}
