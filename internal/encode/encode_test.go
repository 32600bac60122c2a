package encode

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeupmcp/internal/types"
	"lifeupmcp/internal/validate"
)

func intp(v int) *int       { return &v }
func boolp(v bool) *bool    { return &v }
func strp(v string) *string { return &v }

// parse splits a rendered command into its path and decoded query.
func parse(t *testing.T, cmd Command) (string, url.Values) {
	t.Helper()
	s := cmd.String()
	path, raw, _ := strings.Cut(s, "?")
	values, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return path, values
}

func TestTask_ReadChapterScenario(t *testing.T) {
	req, err := validate.TaskCreate(map[string]any{
		"name":     "Read Chapter 5",
		"exp":      50,
		"coin":     25,
		"skillIds": []any{1},
	})
	require.NoError(t, err)

	cmd, err := Task(req)
	require.NoError(t, err)

	s := cmd.String()
	assert.True(t, strings.HasPrefix(s, "lifeup://api/add_task?"))
	assert.Contains(t, s, "todo=Read%20Chapter%205")
	assert.Contains(t, s, "exp=50")
	assert.Contains(t, s, "coin=25")
	assert.Contains(t, s, "skills=1")
	assert.NotContains(t, s, "+")
}

func TestTask_ParamOrder(t *testing.T) {
	cmd, err := Task(&types.TaskRequest{
		Name:     "Run",
		Exp:      intp(10),
		Coin:     intp(5),
		SkillIDs: []int{3, 1, 2},
		Color:    "#66CCFF",
	})
	require.NoError(t, err)

	want := []Param{
		{"todo", "Run"},
		{"exp", "10"},
		{"skills", "3"},
		{"skills", "1"},
		{"skills", "2"},
		{"coin", "5"},
		{"color", "#66CCFF"},
	}
	if diff := cmp.Diff(want, cmd.Query.Params()); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "lifeup://api/add_task?todo=Run&exp=10&skills=3&skills=1&skills=2&coin=5&color=%2366CCFF", cmd.String())
}

func TestTask_RoundTrip(t *testing.T) {
	deadline := int64(1735689600000)
	taskType := types.TaskCount
	req := &types.TaskRequest{
		Name:        "Write 2 pages & edit #draft",
		Content:     "a+b = c?",
		Exp:         intp(40),
		SkillIDs:    []int{4, 9},
		Coin:        intp(12),
		CoinVar:     intp(3),
		CategoryID:  intp(0),
		Deadline:    &deadline,
		TaskType:    &taskType,
		TargetTimes: intp(5),
		Importance:  intp(2),
		Items:       []types.ItemReward{{ItemID: 7, Amount: 2}},
	}
	cmd, err := Task(req)
	require.NoError(t, err)

	path, got := parse(t, cmd)
	assert.Equal(t, PathAddTask, path)
	want := url.Values{
		"todo":         {"Write 2 pages & edit #draft"},
		"notes":        {"a+b = c?"},
		"exp":          {"40"},
		"skills":       {"4", "9"},
		"coin":         {"12"},
		"coin_var":     {"3"},
		"category":     {"0"},
		"deadline":     {"1735689600000"},
		"task_type":    {"1"},
		"target_times": {"5"},
		"importance":   {"2"},
		"items":        {`[{"item_id":7,"amount":2}]`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestTaskEdit_IdentificationFirstAndPartial(t *testing.T) {
	cmd, err := TaskEdit(&types.TaskEditRequest{
		Name:        "Read",
		Coin:        intp(-5),
		CoinSetType: types.SetRelative,
		Exp:         intp(20),
		SkillIDs:    []int{1},
	})
	require.NoError(t, err)

	want := []Param{
		{"name", "Read"},
		{"exp", "20"},
		{"exp_set_type", "absolute"},
		{"skills", "1"},
		{"coin", "-5"},
		{"coin_set_type", "relative"},
	}
	if diff := cmp.Diff(want, cmd.Query.Params()); diff != "" {
		t.Errorf("params mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, PathEditTask, cmd.Path)
}

func TestTaskDelete_NoDeleteMarker(t *testing.T) {
	cmd, err := TaskDelete(&types.TaskDeleteRequest{ID: intp(42)})
	require.NoError(t, err)
	assert.Equal(t, "lifeup://api/delete_task?id=42", cmd.String())
}

func TestSubtask(t *testing.T) {
	cmd, err := Subtask(&types.SubtaskRequest{MainID: intp(8), Name: "Outline", Coin: intp(2)})
	require.NoError(t, err)
	assert.Equal(t, "lifeup://api/subtask?main_id=8&todo=Outline&coin=2", cmd.String())
}

func TestAchievementUpdate_OnlySuppliedFields(t *testing.T) {
	req, err := validate.AchievementUpdate(map[string]any{"edit_id": 109, "secret": true})
	require.NoError(t, err)

	cmd, err := AchievementUpdate(req)
	require.NoError(t, err)
	assert.Equal(t, "lifeup://api/achievement?edit_id=109&secret=true", cmd.String())
}

func TestAchievementCreate_StructuredArrays(t *testing.T) {
	cmd, err := AchievementCreate(&types.AchievementCreateRequest{
		Name:       "Bookworm",
		CategoryID: intp(2),
		Conditions: []types.AchievementCondition{{Type: 7, Target: 10}},
		Exp:        intp(100),
		Skills:     []int{1, 2},
		Items:      []types.ItemReward{{ItemID: 3, Amount: 1}},
		Color:      "#66CCFF",
	})
	require.NoError(t, err)

	_, got := parse(t, cmd)
	assert.Equal(t, []string{`[{"type":7,"target":10}]`}, got["conditions_json"])
	assert.Equal(t, []string{"1", "2"}, got["skills"])
	assert.Equal(t, []string{`[{"item_id":3,"amount":1}]`}, got["items"])
	assert.Contains(t, cmd.String(), "color=%2366CCFF")
	assert.NotContains(t, cmd.String(), "#")
}

func TestAchievementUpdate_AdjacentMarkers(t *testing.T) {
	cmd, err := AchievementUpdate(&types.AchievementUpdateRequest{
		EditID:      intp(5),
		Exp:         intp(-10),
		ExpSetType:  types.SetRelative,
		Skills:      []int{2},
		Coin:        intp(30),
		CoinSetType: types.SetAbsolute,
	})
	require.NoError(t, err)
	assert.Equal(t,
		"lifeup://api/achievement?edit_id=5&exp=-10&exp_set_type=relative&skills=2&coin=30&coin_set_type=absolute",
		cmd.String())
}

func TestDeleteMarkers(t *testing.T) {
	tests := []struct {
		name string
		req  any
		want string
	}{
		{"achievement", &types.AchievementDeleteRequest{EditID: intp(3)}, "lifeup://api/achievement?edit_id=3&delete=true"},
		{"skill", &types.SkillRequest{ID: intp(4), Content: "ignored", Delete: true}, "lifeup://api/skill?id=4&delete=true"},
		{"shop item by name", &types.ShopItemEditRequest{Name: "Cold Brew", SetPrice: intp(9), Delete: true}, "lifeup://api/item?name=Cold%20Brew&delete=true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := Request(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd.String())
		})
	}
}

func TestShopItem(t *testing.T) {
	cmd, err := ShopItemCreate(&types.ShopItemCreateRequest{
		Name:          "Coffee",
		Price:         intp(20),
		StockNumber:   intp(-1),
		Effects:       []types.ItemEffect{{Type: 2, Info: map[string]any{"min": 1, "max": 5}}},
		PurchaseLimit: []types.PurchaseLimit{{Type: "daily", Value: 1}},
	})
	require.NoError(t, err)
	_, got := parse(t, cmd)
	assert.Equal(t, "-1", got.Get("stock_number"))
	assert.Equal(t, `[{"type":2,"info":{"max":5,"min":1}}]`, got.Get("effects"))
	assert.Equal(t, `[{"type":"daily","value":1}]`, got.Get("purchase_limit"))

	cmd, err = ShopItemEdit(&types.ShopItemEditRequest{
		ID:                 intp(11),
		SetName:            strp("Iced Coffee"),
		SetStockNumber:     intp(3),
		SetStockNumberType: types.SetRelative,
	})
	require.NoError(t, err)
	assert.Equal(t,
		"lifeup://api/item?id=11&set_name=Iced%20Coffee&set_stock_number=3&set_stock_number_type=relative",
		cmd.String())
}

func TestShopItem_JSONKeepsMarkup(t *testing.T) {
	cmd, err := ShopItemCreate(&types.ShopItemCreateRequest{
		Name:    "Treat",
		Effects: []types.ItemEffect{{Type: 1, Info: map[string]any{"text": "<b>Tea & cake</b>"}}},
	})
	require.NoError(t, err)

	_, got := parse(t, cmd)
	assert.Equal(t, `[{"type":1,"info":{"text":"<b>Tea & cake</b>"}}]`, got.Get("effects"))
	assert.NotContains(t, got.Get("effects"), `\u0026`)
	assert.NotContains(t, cmd.String(), "%0A")
}

func TestPenaltyAndSkill(t *testing.T) {
	cmd, err := Penalty(&types.PenaltyRequest{Type: "exp", Content: "Skipped gym", Number: 15, Skills: []int{2}, Silent: boolp(true)})
	require.NoError(t, err)
	assert.Equal(t, "lifeup://api/penalty?type=exp&content=Skipped%20gym&number=15&skills=2&silent=true", cmd.String())

	cmd, err = Skill(&types.SkillRequest{Content: "Deep Work", Color: "#1A2B3C", Exp: intp(0)})
	require.NoError(t, err)
	assert.Equal(t, "lifeup://api/skill?content=Deep%20Work&color=%231A2B3C&exp=0", cmd.String())
}

func TestRequest_Unsupported(t *testing.T) {
	_, err := Request(struct{}{})
	assert.ErrorIs(t, err, ErrUnsupportedRequest)
}

func TestEscape(t *testing.T) {
	tests := map[string]string{
		"Read Chapter 5": "Read%20Chapter%205",
		"#66CCFF":        "%2366CCFF",
		"a+b":            "a%2Bb",
		"50% done":       "50%25%20done",
		"x&y=z":          "x%26y%3Dz",
	}
	for in, want := range tests {
		assert.Equal(t, want, Escape(in), "Escape(%q)", in)
	}
}

func TestResolve(t *testing.T) {
	assert.Equal(t, types.SetAbsolute, Resolve(""))
	assert.Equal(t, types.SetRelative, Resolve(types.SetRelative))

	var q Query
	q.Adjust("coin", nil, types.SetRelative, "coin_set_type")
	assert.Empty(t, q.Params())
}
