package dto_test

import (
	"lodge/shared/constant"
	"lodge/shared/dto"
	"lodge/shared/model"
	"net/http"
	"net/url"
	"testing"
	"time"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	modifiedAt := time.Date(2023, 1, 2, 12, 0, 0, 0, time.UTC)

	modelMetadata := model.Metadata{
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
		CreatedBy:  "creator",
		ModifiedBy: "modifier",
	}

	metadata := &dto.Metadata{}
	metadata.FromModel(modelMetadata)

	expectedCreatedAt := createdAt.Format(constant.DateFormat)
	expectedModifiedAt := modifiedAt.Format(constant.DateFormat)

	if metadata.CreatedAt != expectedCreatedAt {
		t.Errorf("expected CreatedAt to be %s, got %s", expectedCreatedAt, metadata.CreatedAt)
	}

	if metadata.ModifiedAt != expectedModifiedAt {
		t.Errorf("expected ModifiedAt to be %s, got %s", expectedModifiedAt, metadata.ModifiedAt)
	}

	if metadata.CreatedBy != "creator" {
		t.Errorf("expected CreatedBy to be 'creator', got %s", metadata.CreatedBy)
	}

	if metadata.ModifiedBy != "modifier" {
		t.Errorf("expected ModifiedBy to be 'modifier', got %s", metadata.ModifiedBy)
	}
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    map[string]string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name: "with all valid parameters",
			queryParams: map[string]string{
				"page":     "2",
				"limit":    "20",
				"sort_by":  "name",
				"sort_dir": "ASC",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    2,
				Limit:   20,
				SortBy:  "name",
				SortDir: "ASC",
			},
		},
		{
			name:           "with default request enabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name:           "with default request disabled and no parameters",
			queryParams:    map[string]string{},
			defaultRequest: false,
			expected: dto.QueryParams{
				Page:    0,
				Limit:   0,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with invalid page parameter",
			queryParams: map[string]string{
				"page": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage, // Should use default
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with negative page parameter",
			queryParams: map[string]string{
				"page": "-1",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage, // Should use default
				Limit:   constant.DefaultValueLimit,
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with invalid limit parameter",
			queryParams: map[string]string{
				"limit": "invalid",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit, // Should use default
				SortBy:  "",
				SortDir: "",
			},
		},
		{
			name: "with lowercase sort direction",
			queryParams: map[string]string{
				"sort_dir": "desc",
			},
			defaultRequest: false,
			expected: dto.QueryParams{
				SortDir: "DESC",
			},
		},
		{
			name: "with partial parameters and defaults enabled",
			queryParams: map[string]string{
				"page":    "3",
				"sort_by": "email",
			},
			defaultRequest: true,
			expected: dto.QueryParams{
				Page:    3,
				Limit:   constant.DefaultValueLimit, // Should use default
				SortBy:  "email",
				SortDir: "", // Empty when not provided
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baseURL := "http://example.com/test"
			u, err := url.Parse(baseURL)
			if err != nil {
				t.Fatalf("failed to parse URL: %v", err)
			}

			query := u.Query()
			for key, value := range tt.queryParams {
				query.Set(key, value)
			}
			u.RawQuery = query.Encode()

			req, err := http.NewRequest("GET", u.String(), nil)
			if err != nil {
				t.Fatalf("failed to create request: %v", err)
			}

			queryParams := &dto.QueryParams{}
			queryParams.FromRequest(req, tt.defaultRequest)

			if queryParams.Page != tt.expected.Page {
				t.Errorf("expected Page to be %d, got %d", tt.expected.Page, queryParams.Page)
			}
			if queryParams.Limit != tt.expected.Limit {
				t.Errorf("expected Limit to be %d, got %d", tt.expected.Limit, queryParams.Limit)
			}
			if queryParams.SortBy != tt.expected.SortBy {
				t.Errorf("expected SortBy to be %s, got %s", tt.expected.SortBy, queryParams.SortBy)
			}
			if queryParams.SortDir != tt.expected.SortDir {
				t.Errorf("expected SortDir to be %s, got %s", tt.expected.SortDir, queryParams.SortDir)
			}
		})
	}
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name         string
		filter       dto.Filter
		expectedSQL  string
		expectedArgs map[string]any
	}{
		{
			name: "equality with table prefix",
			filter: dto.Filter{
				Field:    "status",
				Value:    "AVAILABLE",
				Operator: dto.FilterOperatorEq,
				Table:    "rooms",
			},
			expectedSQL:  "rooms.status = :status",
			expectedArgs: map[string]any{"status": "AVAILABLE"},
		},
		{
			name: "equality without table",
			filter: dto.Filter{
				Field:    "email",
				Value:    "jane@example.com",
				Operator: dto.FilterOperatorEq,
			},
			expectedSQL:  "email = :email",
			expectedArgs: map[string]any{"email": "jane@example.com"},
		},
		{
			name: "custom argument name",
			filter: dto.Filter{
				ArgName:  "current_status",
				Field:    "status",
				Value:    "ONGOING",
				Operator: dto.FilterOperatorEq,
				Table:    "bookings",
			},
			expectedSQL:  "bookings.status = :current_status",
			expectedArgs: map[string]any{"current_status": "ONGOING"},
		},
		{
			name: "less than",
			filter: dto.Filter{
				Field:    "end_time",
				Value:    "2023-01-01T00:00:00Z",
				Operator: dto.FilterOperatorLess,
				Table:    "bookings",
			},
			expectedSQL:  "bookings.end_time < :end_time",
			expectedArgs: map[string]any{"end_time": "2023-01-01T00:00:00Z"},
		},
		{
			name: "not equal",
			filter: dto.Filter{
				Field:    "role",
				Value:    "ADMIN",
				Operator: dto.FilterOperatorNotEq,
			},
			expectedSQL:  "role != :role",
			expectedArgs: map[string]any{"role": "ADMIN"},
		},
		{
			name: "unknown operator yields empty clause",
			filter: dto.Filter{
				Field:    "status",
				Value:    "AVAILABLE",
				Operator: "between",
			},
			expectedSQL:  "",
			expectedArgs: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := tt.filter.GetWhereClause()

			if sql != tt.expectedSQL {
				t.Errorf("expected clause %q, got %q", tt.expectedSQL, sql)
			}

			if len(args) != len(tt.expectedArgs) {
				t.Fatalf("expected %d args, got %d", len(tt.expectedArgs), len(args))
			}

			for key, expected := range tt.expectedArgs {
				if args[key] != expected {
					t.Errorf("expected arg %s to be %v, got %v", key, expected, args[key])
				}
			}
		})
	}
}

func TestFilter_GetWhereClause_In(t *testing.T) {
	filter := dto.Filter{
		Field:    "status",
		Value:    []string{"ONGOING", "DONE"},
		Operator: dto.FilterOperatorIn,
		Table:    "bookings",
	}

	sql, args := filter.GetWhereClause()

	expectedSQL := "bookings.status IN (:status_0, :status_1) "
	if sql != expectedSQL {
		t.Errorf("expected clause %q, got %q", expectedSQL, sql)
	}

	if args["status_0"] != "ONGOING" || args["status_1"] != "DONE" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	t.Run("empty group yields empty clause", func(t *testing.T) {
		group := dto.FilterGroup{Operator: dto.FilterGroupOperatorAnd}

		sql, args := group.GetWhereClause()

		if sql != "" {
			t.Errorf("expected empty clause, got %q", sql)
		}

		if len(args) != 0 {
			t.Errorf("expected no args, got %v", args)
		}
	})

	t.Run("joins filters with the group operator", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{
					Field:    "status",
					Value:    "ONGOING",
					Operator: dto.FilterOperatorEq,
					Table:    "bookings",
				},
				dto.Filter{
					Field:    "user_id",
					Value:    "user-1",
					Operator: dto.FilterOperatorEq,
					Table:    "bookings",
				},
			},
		}

		sql, args := group.GetWhereClause()

		expectedSQL := "(bookings.status = :status AND bookings.user_id = :user_id)"
		if sql != expectedSQL {
			t.Errorf("expected clause %q, got %q", expectedSQL, sql)
		}

		if args["status"] != "ONGOING" || args["user_id"] != "user-1" {
			t.Errorf("unexpected args: %v", args)
		}
	})

	t.Run("nested groups are parenthesized", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []any{
				dto.Filter{
					Field:    "user_id",
					Value:    "user-1",
					Operator: dto.FilterOperatorEq,
				},
				dto.FilterGroup{
					Operator: dto.FilterGroupOperatorOr,
					Filters: []any{
						dto.Filter{
							Field:    "status",
							Value:    "ONGOING",
							Operator: dto.FilterOperatorEq,
						},
						dto.Filter{
							ArgName:  "done_status",
							Field:    "status",
							Value:    "DONE",
							Operator: dto.FilterOperatorEq,
						},
					},
				},
			},
		}

		sql, args := group.GetWhereClause()

		expectedSQL := "(user_id = :user_id AND (status = :status OR status = :done_status))"
		if sql != expectedSQL {
			t.Errorf("expected clause %q, got %q", expectedSQL, sql)
		}

		if len(args) != 3 {
			t.Errorf("expected 3 args, got %v", args)
		}
	})
}

func TestSortDirectionConstants(t *testing.T) {
	if dto.SortDirAsc != "ASC" {
		t.Errorf("expected SortDirAsc to be 'ASC', got %s", dto.SortDirAsc)
	}
	if dto.SortDirDesc != "DESC" {
		t.Errorf("expected SortDirDesc to be 'DESC', got %s", dto.SortDirDesc)
	}
}
