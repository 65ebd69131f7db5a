// Package chat classifies assistant input into scenarios and drives the
// numbered pick flow that leads from the triage list to a playbook.
package chat

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rcliao/certimatch/internal/domain"
)

// Scenario names a canned answer or flow.
type Scenario string

const (
	ScenarioLabsWhere         Scenario = "LABS_WHERE"
	ScenarioLabsBestReason    Scenario = "LABS_BEST_REASON"
	ScenarioDiagFixTips       Scenario = "DIAG_FIX_TIPS"
	ScenarioDiagActionSummary Scenario = "DIAG_ACTIONITEMS_SUMMARY"
	ScenarioFailFixFlow       Scenario = "FAIL_FIX_FLOW"
	ScenarioRepoAutofillHelp  Scenario = "REPO_AUTOFILL_HELP"
	ScenarioRepoPickerHelp    Scenario = "REPO_PICKER_HELP"
	ScenarioDocsWhatMissing   Scenario = "DOCS_WHAT_MISSING"
	ScenarioDocsDraftOK       Scenario = "DOCS_DRAFT_OK"
	ScenarioDocsAutofillTips  Scenario = "DOCS_AUTOFILL_TIPS"
	ScenarioDocsOutputExplain Scenario = "DOCS_OUTPUT_EXPLAIN"
	ScenarioDocsNextStep      Scenario = "DOCS_NEXT_STEP"
)

type IntentKind string

const (
	IntentScenario       IntentKind = "scenario"
	IntentPick           IntentKind = "pick"
	IntentPickOutOfRange IntentKind = "pick_out_of_range"
	IntentReprompt       IntentKind = "reprompt"
	IntentFallback       IntentKind = "fallback"
)

// Intent is the outcome of classifying one chat turn.
//
// Index is the 1-based number the user typed for pick intents. Item is set
// only for IntentPick.
type Intent struct {
	Kind     IntentKind
	Scenario Scenario
	Index    int
	Item     *domain.RemediationItem
}

// State is either Idle or AwaitingPick.
type State interface {
	isState()
}

// Idle means no numbered list is pending.
type Idle struct{}

// AwaitingPick holds the options the user was offered, in display order.
type AwaitingPick struct {
	Options []domain.RemediationItem
}

func (Idle) isState()         {}
func (AwaitingPick) isState() {}

var pickPattern = regexp.MustCompile(`^\s*(\d+)\s*(번)?\s*$`)

type predicate struct {
	scenario Scenario
	docsOnly bool
	match    func(t string) bool
}

// predicates are tested in order against compacted text; the first match wins.
var predicates = []predicate{
	{scenario: ScenarioLabsWhere, match: func(t string) bool {
		return has(t, "어디") && has(t, "인증기관")
	}},
	{scenario: ScenarioLabsWhere, match: func(t string) bool {
		return has(t, "매칭") && hasAny(t, "어디", "추천")
	}},
	{scenario: ScenarioLabsBestReason, match: func(t string) bool {
		return hasAny(t, "best", "베스트", "최적")
	}},
	{scenario: ScenarioDiagFixTips, match: func(t string) bool {
		return has(t, "규제진단") && hasAny(t, "고치", "수정", "팁", "fail")
	}},
	{scenario: ScenarioDiagActionSummary, match: func(t string) bool {
		return hasAny(t, "조치율", "액션아이템", "보완사항")
	}},
	{scenario: ScenarioFailFixFlow, match: func(t string) bool {
		return hasAny(t, "fail", "불합격", "playbook", "플레이북")
	}},
	{scenario: ScenarioRepoAutofillHelp, match: func(t string) bool {
		return has(t, "자동") && hasAny(t, "업로드", "저장소")
	}},
	{scenario: ScenarioRepoPickerHelp, match: func(t string) bool {
		return has(t, "저장소선택") || (has(t, "저장소") && has(t, "안떠"))
	}},
	{scenario: ScenarioDocsWhatMissing, docsOnly: true, match: func(t string) bool {
		return hasAny(t, "부족", "뭐가")
	}},
	{scenario: ScenarioDocsDraftOK, docsOnly: true, match: func(t string) bool {
		return hasAny(t, "초안", "부족해도")
	}},
	{scenario: ScenarioDocsOutputExplain, docsOnly: true, match: func(t string) bool {
		return hasAny(t, "doc", "tcf", "의미")
	}},
	{scenario: ScenarioDocsNextStep, docsOnly: true, match: func(t string) bool {
		return hasAny(t, "다음", "이후")
	}},
}

// Classify maps one turn of user text to an intent and the next state.
// It is a pure function of its arguments.
func Classify(text string, view domain.View, state State) (Intent, State) {
	if pending, ok := state.(AwaitingPick); ok {
		return classifyPick(text, pending)
	}
	if s := match(text, view); s != "" {
		return Intent{Kind: IntentScenario, Scenario: s}, Idle{}
	}
	return Intent{Kind: IntentFallback}, Idle{}
}

// Offer returns the state that waits for a pick among options. With no
// options there is nothing to pick and the state stays Idle.
func Offer(options []domain.RemediationItem) State {
	if len(options) == 0 {
		return Idle{}
	}
	copied := make([]domain.RemediationItem, len(options))
	copy(copied, options)
	return AwaitingPick{Options: copied}
}

func classifyPick(text string, pending AwaitingPick) (Intent, State) {
	m := pickPattern.FindStringSubmatch(text)
	if m == nil {
		return Intent{Kind: IntentReprompt}, pending
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 || n > len(pending.Options) {
		if err != nil {
			n = 0
		}
		return Intent{Kind: IntentPickOutOfRange, Index: n}, pending
	}
	item := pending.Options[n-1]
	return Intent{Kind: IntentPick, Index: n, Item: &item}, Idle{}
}

func match(text string, view domain.View) Scenario {
	t := strings.Join(strings.Fields(strings.ToLower(text)), "")
	if t == "" {
		return ""
	}
	for _, p := range predicates {
		if p.docsOnly && view != domain.ViewDocs {
			continue
		}
		if p.match(t) {
			return p.scenario
		}
	}
	return ""
}

func has(t, sub string) bool {
	return strings.Contains(t, sub)
}

func hasAny(t string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}
