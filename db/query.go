package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"dossiervault/models"

	"github.com/tidwall/gjson"
)

// --- Query Structures ---

// QueryCondition represents a single condition like "path operator value".
type QueryCondition struct {
	Path          string      // Dot notation path (e.g., "status") or empty for root
	Operator      string      // Base operator, suffix stripped
	ParsedValue   interface{} // The parsed value (string, float64, bool, nil)
	ValueType     gjson.Type  // The type determined during parsing
	IsInsensitive bool        // Flag derived from operator suffix
	Original      string      // Original condition string for error messages
}

// LogicalOperator represents "and" or "or".
type LogicalOperator string

const (
	LogicAnd LogicalOperator = "and"
	LogicOr  LogicalOperator = "or"
)

// ParsedQuery holds the sequence of conditions and logical operators.
type ParsedQuery struct {
	Conditions []QueryCondition
	Logic      []LogicalOperator // Logic[i] applies between Conditions[i] and Conditions[i+1]
}

// --- Query Parsing ---

var validOperators = map[string]bool{
	"equals": true, "notequals": true,
	"greaterthan": true, "lessthan": true,
	"greaterthanorequals": true, "lessthanorequals": true,
	"contains": true, "startswith": true, "endswith": true,
	"equals-insensitive": true, "notequals-insensitive": true,
	"contains-insensitive": true, "startswith-insensitive": true, "endswith-insensitive": true,
}

// ParseContentQuery takes the raw query array from the request and parses it
// into a structured ParsedQuery. It performs syntax validation.
func ParseContentQuery(queryParts []string) (*ParsedQuery, error) {
	if len(queryParts) == 0 {
		return nil, nil // No query provided is valid
	}

	parsed := &ParsedQuery{}
	isExpectingCondition := true

	for i, part := range queryParts {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("query part at index %d is empty", i)
		}

		if isExpectingCondition {
			condition, err := parseSingleCondition(part)
			if err != nil {
				return nil, fmt.Errorf("invalid condition at index %d ('%s'): %w", i, part, err)
			}
			parsed.Conditions = append(parsed.Conditions, condition)
		} else {
			logic := LogicalOperator(strings.ToLower(part))
			if logic != LogicAnd && logic != LogicOr {
				return nil, fmt.Errorf("invalid logical operator at index %d: '%s', expected 'and' or 'or'", i, part)
			}
			parsed.Logic = append(parsed.Logic, logic)
		}
		isExpectingCondition = !isExpectingCondition
	}

	// The last parsed part must have been a condition.
	if isExpectingCondition {
		return nil, errors.New("query must end with a condition, not a logical operator")
	}

	return parsed, nil
}

// parseSingleCondition parses a string like "path operator value" into a
// QueryCondition, determining the type of the value.
func parseSingleCondition(conditionStr string) (QueryCondition, error) {
	parts := strings.Fields(conditionStr)

	if len(parts) < 2 {
		return QueryCondition{}, fmt.Errorf("condition must have at least an operator and a value")
	}

	var path, operator, rawValueStr string
	var isInsensitive bool

	// Either "operator value..." (root path) or "path operator value...".
	potentialOperator := strings.ToLower(parts[0])
	_, isFirstPartOperator := validOperators[potentialOperator]

	if isFirstPartOperator {
		path = ""
		operator = potentialOperator
		valueStartIndex := strings.Index(conditionStr, parts[1])
		if valueStartIndex == -1 {
			return QueryCondition{}, fmt.Errorf("internal parsing error: could not find value start")
		}
		rawValueStr = strings.TrimSpace(conditionStr[valueStartIndex:])
	} else if len(parts) >= 3 {
		path = parts[0]
		operator = strings.ToLower(parts[1])
		valueStartIndex := strings.Index(conditionStr, parts[2])
		if valueStartIndex == -1 {
			return QueryCondition{}, fmt.Errorf("internal parsing error: could not find value start")
		}
		rawValueStr = strings.TrimSpace(conditionStr[valueStartIndex:])

		if _, isValidOp := validOperators[operator]; !isValidOp {
			return QueryCondition{}, fmt.Errorf("invalid operator '%s'", operator)
		}
	} else {
		return QueryCondition{}, fmt.Errorf("invalid condition format")
	}

	if strings.HasSuffix(operator, "-insensitive") {
		isInsensitive = true
		operator = strings.TrimSuffix(operator, "-insensitive")
		switch operator {
		case "equals", "notequals", "contains", "startswith", "endswith":
		default:
			return QueryCondition{}, fmt.Errorf("invalid base operator for insensitive matching '%s'", operator)
		}
	}

	// Determine the value's type. Numbers are checked before booleans
	// because "0" parses as both.
	var parsedValue interface{}
	var valueType gjson.Type

	trimmedValue := strings.TrimSpace(rawValueStr)

	if len(trimmedValue) >= 2 && trimmedValue[0] == '"' && trimmedValue[len(trimmedValue)-1] == '"' {
		parsedValue = trimmedValue[1 : len(trimmedValue)-1]
		valueType = gjson.String
	} else if trimmedValue == "null" {
		parsedValue = nil
		valueType = gjson.Null
	} else if f, err := strconv.ParseFloat(trimmedValue, 64); err == nil {
		parsedValue = f
		valueType = gjson.Number
	} else if b, err := strconv.ParseBool(trimmedValue); err == nil {
		parsedValue = b
		valueType = gjson.False
		if b {
			valueType = gjson.True
		}
	} else {
		parsedValue = trimmedValue
		valueType = gjson.String
	}

	return QueryCondition{
		Path:          path,
		Operator:      operator,
		ParsedValue:   parsedValue,
		ValueType:     valueType,
		IsInsensitive: isInsensitive,
		Original:      conditionStr,
	}, nil
}

// --- Query Evaluation ---

// EvaluateContentQuery checks if a single dossier record matches the parsed
// query. The record is marshalled to JSON and queried with gjson paths, so a
// condition like "status equals released" or "guardians contains abc" works
// against any field of the record.
func EvaluateContentQuery(d models.Dossier, query *ParsedQuery) (bool, error) {
	if query == nil || len(query.Conditions) == 0 {
		return true, nil // No query means match
	}

	jsonBytes, err := json.Marshal(d)
	if err != nil {
		return false, fmt.Errorf("failed to marshal dossier for query evaluation: %w", err)
	}
	recordJSON := string(jsonBytes)

	result, err := evaluateSingleCondition(recordJSON, query.Conditions[0])
	if err != nil {
		return false, fmt.Errorf("error evaluating condition '%s': %w", query.Conditions[0].Original, err)
	}

	for i, logic := range query.Logic {
		nextResult, err := evaluateSingleCondition(recordJSON, query.Conditions[i+1])
		if err != nil {
			return false, fmt.Errorf("error evaluating condition '%s': %w", query.Conditions[i+1].Original, err)
		}

		switch logic {
		case LogicAnd:
			result = result && nextResult
		case LogicOr:
			result = result || nextResult
		}
	}

	return result, nil
}

// evaluateSingleCondition checks if the record satisfies one specific condition.
func evaluateSingleCondition(recordJSON string, cond QueryCondition) (bool, error) {
	var targetValue gjson.Result
	if cond.Path == "" {
		targetValue = gjson.Parse(recordJSON)
	} else {
		targetValue = gjson.Get(recordJSON, cond.Path)
		if !targetValue.Exists() {
			return false, fmt.Errorf("path '%s' does not exist in dossier record", cond.Path)
		}
	}

	return compareJSONValue(targetValue, cond)
}

// compareJSONValue performs comparisons for gjson.Result values.
func compareJSONValue(targetValue gjson.Result, cond QueryCondition) (bool, error) {
	op := cond.Operator
	parsedVal := cond.ParsedValue
	condValType := cond.ValueType
	targetType := targetValue.Type

	// Array 'contains' checks element membership with strict element typing.
	if targetType == gjson.JSON && targetValue.IsArray() && op == "contains" {
		found := false
		targetValue.ForEach(func(key, value gjson.Result) bool {
			elementMatches := false
			switch value.Type {
			case gjson.String:
				if condValType == gjson.String {
					condStr := parsedVal.(string)
					if cond.IsInsensitive {
						elementMatches = strings.EqualFold(value.String(), condStr)
					} else {
						elementMatches = value.String() == condStr
					}
				}
			case gjson.Number:
				if condValType == gjson.Number {
					elementMatches = value.Float() == parsedVal.(float64)
				}
			case gjson.True, gjson.False:
				if condValType == gjson.True || condValType == gjson.False {
					elementMatches = value.Bool() == parsedVal.(bool)
				}
			case gjson.Null:
				elementMatches = condValType == gjson.Null
			}

			if elementMatches {
				found = true
				return false // Stop iterating
			}
			return true
		})
		return found, nil
	}

	// Null on either side.
	isNullTarget := targetType == gjson.Null
	isNullCondValue := condValType == gjson.Null

	if isNullTarget || isNullCondValue {
		if isNullTarget && isNullCondValue {
			switch op {
			case "equals":
				return true, nil
			case "notequals":
				return false, nil
			default:
				return false, fmt.Errorf("operator '%s' invalid for null comparison", cond.Operator)
			}
		}
		switch op {
		case "equals":
			return false, nil
		case "notequals":
			return true, nil
		case "contains":
			return false, nil
		default:
			return false, fmt.Errorf("operator '%s' invalid for comparing null with non-null value", cond.Operator)
		}
	}

	switch targetType {
	case gjson.String:
		targetStr := targetValue.String()
		switch op {
		case "equals", "notequals", "contains", "startswith", "endswith":
			if condValType != gjson.String {
				if op == "notequals" {
					return true, nil
				}
				return false, fmt.Errorf("type mismatch: cannot compare string with %s using operator '%s'", condValType.String(), op)
			}
			valCompare := parsedVal.(string)
			if cond.IsInsensitive {
				targetStr = strings.ToLower(targetStr)
				valCompare = strings.ToLower(valCompare)
			}
			switch op {
			case "equals":
				return targetStr == valCompare, nil
			case "notequals":
				return targetStr != valCompare, nil
			case "contains":
				return strings.Contains(targetStr, valCompare), nil
			case "startswith":
				return strings.HasPrefix(targetStr, valCompare), nil
			case "endswith":
				return strings.HasSuffix(targetStr, valCompare), nil
			}
			return false, fmt.Errorf("internal error: unknown string operator '%s'", op)
		default:
			return false, fmt.Errorf("type mismatch: cannot apply numeric operator '%s' to string value", op)
		}

	case gjson.Number:
		targetNum := targetValue.Float()
		switch op {
		case "equals", "notequals", "greaterthan", "lessthan", "greaterthanorequals", "lessthanorequals":
			if condValType != gjson.Number {
				if op == "notequals" {
					return true, nil
				}
				return false, fmt.Errorf("type mismatch: value '%v' is not a valid number for comparison with operator '%s'", parsedVal, op)
			}
			valNum := parsedVal.(float64)
			switch op {
			case "equals":
				return targetNum == valNum, nil
			case "notequals":
				return targetNum != valNum, nil
			case "greaterthan":
				return targetNum > valNum, nil
			case "lessthan":
				return targetNum < valNum, nil
			case "greaterthanorequals":
				return targetNum >= valNum, nil
			case "lessthanorequals":
				return targetNum <= valNum, nil
			}
			return false, fmt.Errorf("internal error: unknown numeric operator '%s'", op)
		default:
			return false, fmt.Errorf("type mismatch: cannot apply string operator '%s' to numeric value", op)
		}

	case gjson.True, gjson.False:
		targetBool := targetValue.Bool()
		switch op {
		case "equals", "notequals":
			if !(condValType == gjson.True || condValType == gjson.False) {
				if op == "notequals" {
					return true, nil
				}
				return false, fmt.Errorf("type mismatch: value '%v' is not a valid boolean for comparison with operator '%s'", parsedVal, op)
			}
			valBool := parsedVal.(bool)
			if op == "equals" {
				return targetBool == valBool, nil
			}
			return targetBool != valBool, nil
		default:
			return false, fmt.Errorf("operator '%s' is invalid for boolean comparison", op)
		}

	case gjson.JSON:
		return false, fmt.Errorf("operator '%s' cannot directly compare arrays/objects", cond.Operator)

	default:
		log.Printf("WARN: Unsupported gjson type '%s' encountered during query evaluation for path '%s'", targetType.String(), cond.Path)
		return false, fmt.Errorf("unsupported type '%s' encountered during query evaluation", targetType.String())
	}
}

// --- Main Query Function ---

// DossierEntry pairs a dossier record with the profile that owns it, for
// query results that span multiple owners.
type DossierEntry struct {
	OwnerID string         `json:"owner_id"`
	Dossier models.Dossier `json:"dossier"`
}

// QueryDossiersParams holds all parameters for querying dossiers.
type QueryDossiersParams struct {
	AuthUserID   string   // ID of the authenticated user (for scope filtering)
	Scope        string   // "owned", "guardian", "recipient", "all" (default)
	ContentQuery []string // Raw content query parts
	SortBy       string   // "creation_date", "last_check_in" (default creation_date)
	Order        string   // "asc" (default), "desc"
	Page         int      // 1-based page number
	Limit        int      // Max items per page (max 100)
}

// QueryDossiers performs filtering, sorting, and pagination over every dossier
// the authenticated user can see: their own, the ones they guard, and the
// ones addressed to them.
func (db *Database) QueryDossiers(params QueryDossiersParams) ([]DossierEntry, int, error) {
	parsedQuery, err := ParseContentQuery(params.ContentQuery)
	if err != nil {
		return nil, 0, fmt.Errorf("invalid content_query: %w", err)
	}

	candidates, err := db.collectScope(params.AuthUserID, params.Scope)
	if err != nil {
		return nil, 0, err
	}

	filtered := make([]DossierEntry, 0, len(candidates))
	for _, entry := range candidates {
		if parsedQuery != nil {
			match, err := EvaluateContentQuery(entry.Dossier, parsedQuery)
			if err != nil {
				// A record the query cannot evaluate is skipped, not fatal.
				log.Printf("WARN: Error evaluating content query for dossier %s/%d, skipping: %v", entry.OwnerID, entry.Dossier.ID, err)
				continue
			}
			if !match {
				continue
			}
		}
		filtered = append(filtered, entry)
	}

	totalMatching := len(filtered)

	if err := sortDossierEntries(filtered, params.SortBy, params.Order); err != nil {
		return nil, 0, err
	}

	paginated, err := paginateDossierEntries(filtered, params.Page, params.Limit)
	if err != nil {
		return nil, 0, err
	}

	return paginated, totalMatching, nil
}

// collectScope gathers the candidate set for the given scope under one read lock.
func (db *Database) collectScope(authUserID, scope string) ([]DossierEntry, error) {
	db.State.Mu.RLock()
	defer db.State.Mu.RUnlock()

	appendOwned := func(entries []DossierEntry, seen map[string]bool) []DossierEntry {
		for _, id := range db.keeper.DossierIDs(authUserID) {
			key := fmt.Sprintf("%s/%d", authUserID, id)
			if seen[key] {
				continue
			}
			d, err := db.keeper.Get(authUserID, id)
			if err != nil {
				continue
			}
			seen[key] = true
			entries = append(entries, DossierEntry{OwnerID: authUserID, Dossier: d})
		}
		return entries
	}
	appendRefs := func(entries []DossierEntry, seen map[string]bool, refs []models.DossierRef) []DossierEntry {
		for _, ref := range refs {
			key := fmt.Sprintf("%s/%d", ref.Owner, ref.ID)
			if seen[key] {
				continue
			}
			d, err := db.keeper.Get(ref.Owner, ref.ID)
			if err != nil {
				continue
			}
			seen[key] = true
			entries = append(entries, DossierEntry{OwnerID: ref.Owner, Dossier: d})
		}
		return entries
	}

	seen := make(map[string]bool)
	entries := make([]DossierEntry, 0)

	switch strings.ToLower(scope) {
	case "owned":
		entries = appendOwned(entries, seen)
	case "guardian":
		entries = appendRefs(entries, seen, db.keeper.DossiersWhereGuardian(authUserID))
	case "recipient":
		entries = appendRefs(entries, seen, db.keeper.DossiersWhereRecipient(authUserID))
	case "all", "":
		entries = appendOwned(entries, seen)
		entries = appendRefs(entries, seen, db.keeper.DossiersWhereGuardian(authUserID))
		entries = appendRefs(entries, seen, db.keeper.DossiersWhereRecipient(authUserID))
	default:
		return nil, fmt.Errorf("invalid scope value: '%s', expected 'owned', 'guardian', 'recipient', or 'all'", scope)
	}

	return entries, nil
}

// --- Sorting Helper ---

func sortDossierEntries(entries []DossierEntry, sortBy, order string) error {
	switch strings.ToLower(sortBy) {
	case "creation_date", "last_check_in", "":
	default:
		return fmt.Errorf("invalid sort_by value: '%s', expected 'creation_date' or 'last_check_in'", sortBy)
	}

	lessFunc := func(i, j int) bool {
		switch strings.ToLower(sortBy) {
		case "last_check_in":
			return entries[i].Dossier.LastCheckIn.Before(entries[j].Dossier.LastCheckIn)
		default: // creation_date
			return entries[i].Dossier.CreationDate.Before(entries[j].Dossier.CreationDate)
		}
	}

	switch strings.ToLower(order) {
	case "desc":
		originalLess := lessFunc
		lessFunc = func(i, j int) bool { return originalLess(j, i) }
	case "asc", "":
	default:
		return fmt.Errorf("invalid order value: '%s', expected 'asc' or 'desc'", order)
	}

	sort.SliceStable(entries, lessFunc)
	return nil
}

// --- Pagination Helper ---

const defaultLimit = 20
const maxLimit = 100

func paginateDossierEntries(entries []DossierEntry, page, limit int) ([]DossierEntry, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	startIndex := (page - 1) * limit
	endIndex := startIndex + limit

	if startIndex >= len(entries) {
		return []DossierEntry{}, nil
	}
	if endIndex > len(entries) {
		endIndex = len(entries)
	}

	return entries[startIndex:endIndex], nil
}
