// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/balance-board/backend/internal/domain/entity"
)

// registerGivenSteps registers scenario setup steps.
func registerGivenSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the following categories exist:$`, theFollowingCategoriesExist)
	ctx.Step(`^the transfer policy forbids negative balances$`, theTransferPolicyForbidsNegativeBalances)
	ctx.Step(`^I am authenticated as the administrator$`, iAmAuthenticatedAsTheAdministrator)
}

// registerRequestSteps registers HTTP request steps.
func registerRequestSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)"$`, iSendARequestTo)
	ctx.Step(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, iSendARequestToWithBody)
	ctx.Step(`^I transfer "([^"]*)" from "([^"]*)" to "([^"]*)" with description "([^"]*)"$`, iTransfer)
	ctx.Step(`^I log in with email "([^"]*)" and password "([^"]*)"$`, iLogInWith)
}

// registerResponseSteps registers response validation steps.
func registerResponseSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^the response status should be (\d+)$`, theResponseStatusShouldBe)
	ctx.Step(`^the response should contain "([^"]*)"$`, theResponseShouldContain)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, theResponseFieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should exist$`, theResponseFieldShouldExist)
	ctx.Step(`^the category "([^"]*)" should have balance "([^"]*)"$`, theCategoryShouldHaveBalance)
	ctx.Step(`^the category "([^"]*)" history should have (\d+) entries$`, theCategoryHistoryShouldHaveEntries)
	ctx.Step(`^the latest entry for "([^"]*)" should have description "([^"]*)"$`, theLatestEntryShouldHaveDescription)
	ctx.Step(`^the category list should be ordered "([^"]*)"$`, theCategoryListShouldBeOrdered)
	ctx.Step(`^the stats should show balance "([^"]*)" and expenses "([^"]*)"$`, theStatsShouldShow)
}

// Setup steps

func theFollowingCategoriesExist(ctx context.Context, table *godog.Table) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if len(table.Rows) < 2 {
		return ctx, fmt.Errorf("category table needs a header row and at least one data row")
	}

	columns := make(map[string]int)
	for i, cell := range table.Rows[0].Cells {
		columns[cell.Value] = i
	}

	for _, row := range table.Rows[1:] {
		get := func(name string) string {
			if idx, ok := columns[name]; ok && idx < len(row.Cells) {
				return row.Cells[idx].Value
			}
			return ""
		}

		balance, err := decimal.NewFromString(get("balance"))
		if err != nil {
			return ctx, fmt.Errorf("invalid balance %q: %w", get("balance"), err)
		}
		rowTier, err := strconv.Atoi(get("row"))
		if err != nil {
			return ctx, fmt.Errorf("invalid row %q: %w", get("row"), err)
		}
		allowNegative := get("allow_negative") == "true"

		cat := entity.NewCategory(
			get("title"), balance, entity.Row(rowTier),
			entity.DefaultCategoryColor, entity.DefaultCategoryIcon, allowNegative,
		)
		if err := tc.categoryRepo.Create(ctx, cat); err != nil {
			return ctx, fmt.Errorf("failed to seed category %q: %w", get("title"), err)
		}
		tc.categories[cat.Title] = cat.ID
	}

	return SetTestContext(ctx, tc), nil
}

func theTransferPolicyForbidsNegativeBalances(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if tc.server != nil {
		return ctx, fmt.Errorf("transfer policy must be set before the first request")
	}
	tc.allowNegative = false
	return SetTestContext(ctx, tc), nil
}

func iAmAuthenticatedAsTheAdministrator(ctx context.Context) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	token, _, err := tc.tokenService.GenerateAccessToken(ctx, testAdminEmail)
	if err != nil {
		return ctx, fmt.Errorf("failed to generate access token: %w", err)
	}
	tc.accessToken = token
	return SetTestContext(ctx, tc), nil
}

// Request steps

func (tc *TestContext) doRequest(method, endpoint string, body []byte) error {
	tc.ensureServer()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, tc.server.URL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tc.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+tc.accessToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}

	tc.response = resp
	tc.responseBody, err = io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	return nil
}

func iSendARequestTo(ctx context.Context, method, endpoint string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if err := tc.doRequest(method, endpoint, nil); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func iSendARequestToWithBody(ctx context.Context, method, endpoint string, body *godog.DocString) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}
	if err := tc.doRequest(method, endpoint, []byte(body.Content)); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

// categoryID resolves a seeded title; unknown titles get a random ID so
// not-found scenarios read naturally.
func (tc *TestContext) categoryID(title string) uuid.UUID {
	if id, ok := tc.categories[title]; ok {
		return id
	}
	return uuid.New()
}

func iTransfer(ctx context.Context, amount, source, target, description string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	body, err := json.Marshal(map[string]string{
		"source_id":   tc.categoryID(source).String(),
		"target_id":   tc.categoryID(target).String(),
		"amount":      amount,
		"description": description,
	})
	if err != nil {
		return ctx, err
	}
	if err := tc.doRequest(http.MethodPost, "/api/v1/transfers", body); err != nil {
		return ctx, err
	}
	return SetTestContext(ctx, tc), nil
}

func iLogInWith(ctx context.Context, email, password string) (context.Context, error) {
	tc := GetTestContext(ctx)
	if tc == nil {
		return ctx, fmt.Errorf("test context not found")
	}

	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return ctx, err
	}
	if err := tc.doRequest(http.MethodPost, "/api/v1/auth/login", body); err != nil {
		return ctx, err
	}

	if tc.response.StatusCode == http.StatusOK {
		var login struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(tc.responseBody, &login); err == nil {
			tc.accessToken = login.AccessToken
		}
	}
	return SetTestContext(ctx, tc), nil
}

// Response steps

func theResponseStatusShouldBe(ctx context.Context, expectedStatus int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}
	if tc.response.StatusCode != expectedStatus {
		return fmt.Errorf("expected status %d, got %d. Body: %s", expectedStatus, tc.response.StatusCode, string(tc.responseBody))
	}
	return nil
}

func theResponseShouldContain(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	if !strings.Contains(string(tc.responseBody), expected) {
		return fmt.Errorf("response does not contain %q. Body: %s", expected, string(tc.responseBody))
	}
	return nil
}

func theResponseFieldShouldBe(ctx context.Context, field, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}

	value, ok := data[field]
	if !ok {
		return fmt.Errorf("field %q not found in response. Body: %s", field, string(tc.responseBody))
	}

	actual := fmt.Sprintf("%v", value)
	if actual != expected {
		return fmt.Errorf("field %q expected %q, got %q", field, expected, actual)
	}
	return nil
}

func theResponseFieldShouldExist(ctx context.Context, field string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(tc.responseBody, &data); err != nil {
		return fmt.Errorf("failed to parse response JSON: %w", err)
	}
	if _, ok := data[field]; !ok {
		return fmt.Errorf("field %q not found in response. Body: %s", field, string(tc.responseBody))
	}
	return nil
}

// categoryList fetches the current category list from the API.
func (tc *TestContext) categoryList() ([]map[string]interface{}, error) {
	if err := tc.doRequest(http.MethodGet, "/api/v1/categories", nil); err != nil {
		return nil, err
	}
	if tc.response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("category list returned status %d", tc.response.StatusCode)
	}

	var list struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(tc.responseBody, &list); err != nil {
		return nil, fmt.Errorf("failed to parse category list: %w", err)
	}
	return list.Data, nil
}

func theCategoryShouldHaveBalance(ctx context.Context, title, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	categories, err := tc.categoryList()
	if err != nil {
		return err
	}

	expectedBalance, err := decimal.NewFromString(expected)
	if err != nil {
		return fmt.Errorf("invalid expected balance %q: %w", expected, err)
	}

	for _, cat := range categories {
		if cat["title"] != title {
			continue
		}
		actual, err := decimal.NewFromString(fmt.Sprintf("%v", cat["balance"]))
		if err != nil {
			return fmt.Errorf("invalid balance in response: %w", err)
		}
		if !actual.Equal(expectedBalance) {
			return fmt.Errorf("category %q expected balance %s, got %s", title, expectedBalance, actual)
		}
		return nil
	}
	return fmt.Errorf("category %q not found in list", title)
}

// history fetches a category's transaction history from the API.
func (tc *TestContext) history(title string) ([]map[string]interface{}, error) {
	endpoint := "/api/v1/categories/" + tc.categoryID(title).String() + "/transactions"
	if err := tc.doRequest(http.MethodGet, endpoint, nil); err != nil {
		return nil, err
	}
	if tc.response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("history returned status %d", tc.response.StatusCode)
	}

	var list struct {
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(tc.responseBody, &list); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return list.Data, nil
}

func theCategoryHistoryShouldHaveEntries(ctx context.Context, title string, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	entries, err := tc.history(title)
	if err != nil {
		return err
	}
	if len(entries) != expected {
		return fmt.Errorf("category %q expected %d history entries, got %d", title, expected, len(entries))
	}
	return nil
}

func theLatestEntryShouldHaveDescription(ctx context.Context, title, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	entries, err := tc.history(title)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("category %q has no history entries", title)
	}
	actual := fmt.Sprintf("%v", entries[0]["description"])
	if actual != expected {
		return fmt.Errorf("latest entry for %q expected description %q, got %q", title, expected, actual)
	}
	return nil
}

func theCategoryListShouldBeOrdered(ctx context.Context, expected string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	categories, err := tc.categoryList()
	if err != nil {
		return err
	}

	titles := make([]string, len(categories))
	for i, cat := range categories {
		titles[i] = fmt.Sprintf("%v", cat["title"])
	}
	actual := strings.Join(titles, ", ")
	if actual != expected {
		return fmt.Errorf("expected order %q, got %q", expected, actual)
	}
	return nil
}

func theStatsShouldShow(ctx context.Context, balance, expenses string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}

	if err := tc.doRequest(http.MethodGet, "/api/v1/stats", nil); err != nil {
		return err
	}
	if tc.response.StatusCode != http.StatusOK {
		return fmt.Errorf("stats returned status %d", tc.response.StatusCode)
	}

	var got struct {
		Balance  string `json:"balance"`
		Expenses string `json:"expenses"`
	}
	if err := json.Unmarshal(tc.responseBody, &got); err != nil {
		return fmt.Errorf("failed to parse stats: %w", err)
	}

	expectedBalance, err := decimal.NewFromString(balance)
	if err != nil {
		return fmt.Errorf("invalid expected balance %q: %w", balance, err)
	}
	expectedExpenses, err := decimal.NewFromString(expenses)
	if err != nil {
		return fmt.Errorf("invalid expected expenses %q: %w", expenses, err)
	}

	actualBalance, err := decimal.NewFromString(got.Balance)
	if err != nil {
		return fmt.Errorf("invalid balance in response: %w", err)
	}
	actualExpenses, err := decimal.NewFromString(got.Expenses)
	if err != nil {
		return fmt.Errorf("invalid expenses in response: %w", err)
	}

	if !actualBalance.Equal(expectedBalance) {
		return fmt.Errorf("expected stats balance %s, got %s", expectedBalance, actualBalance)
	}
	if !actualExpenses.Equal(expectedExpenses) {
		return fmt.Errorf("expected stats expenses %s, got %s", expectedExpenses, actualExpenses)
	}
	return nil
}
