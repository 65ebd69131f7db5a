package chat

import (
	"fmt"
	"strings"

	"github.com/rcliao/certimatch/internal/domain"
)

// Greeting is the first assistant message of every session.
const Greeting = "안녕하세요! 👋\n" +
	"현재 진행 상황을 기반으로 규제진단/인증기관 매칭/제출서류 관련 질문에 답해드릴게요.\n\n" +
	"예) “규제진단 FAIL을 어떻게 고치지?” / “어디 인증기관으로 매칭할까?”"

// Answer is the common shape of every canned reply.
type Answer struct {
	Title   string
	Summary string
	Bullets []string
	Next    []string
	Ask     []string
}

// FormatAnswer renders an answer as bold title, summary and bullet blocks.
// Empty parts are omitted.
func FormatAnswer(a Answer) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**\n\n", a.Title)
	if a.Summary != "" {
		sb.WriteString(a.Summary + "\n\n")
	}
	writeBlock(&sb, "✅ 핵심 포인트", a.Bullets)
	writeBlock(&sb, "🧩 다음 액션", a.Next)
	writeBlock(&sb, "❓ 제가 더 정확히 답하려면", a.Ask)
	return strings.TrimSpace(sb.String())
}

func writeBlock(sb *strings.Builder, heading string, lines []string) {
	if len(lines) == 0 {
		return
	}
	sb.WriteString(heading + "\n")
	for _, l := range lines {
		sb.WriteString("- " + l + "\n")
	}
	sb.WriteString("\n")
}

// SuggestedQuestion is a one-click question offered on the docs screen.
type SuggestedQuestion struct {
	Key   Scenario `json:"key"`
	Label string   `json:"label"`
}

// SuggestedQuestions returns the quick questions for view. Only the docs
// screen has any.
func SuggestedQuestions(view domain.View) []SuggestedQuestion {
	if view != domain.ViewDocs {
		return []SuggestedQuestion{}
	}
	return []SuggestedQuestion{
		{Key: ScenarioDocsWhatMissing, Label: "필수 서류 중 뭐가 부족한가요?"},
		{Key: ScenarioDocsDraftOK, Label: "필수 서류가 부족해도 생성 가능한가요?"},
		{Key: ScenarioDocsAutofillTips, Label: "파일저장소 자동 업로드가 안돼요. 뭐부터 확인해요?"},
		{Key: ScenarioDocsOutputExplain, Label: "DoC/TCF/Risk Report가 각각 뭐예요?"},
		{Key: ScenarioDocsNextStep, Label: "문서 생성 후 다음 단계는 뭐부터 해요?"},
	}
}

// ScenarioAnswer renders the canned answer for s against ctx. It reports
// false for scenarios that are flows rather than canned text.
func ScenarioAnswer(s Scenario, ctx domain.ChatContext) (string, bool) {
	build, ok := scenarioAnswers[s]
	if !ok {
		return "", false
	}
	return FormatAnswer(build(ctx)), true
}

// FallbackAnswer is returned for input no scenario recognizes.
func FallbackAnswer(ctx domain.ChatContext) string {
	return FormatAnswer(Answer{
		Title:   "제가 질문을 정확히 못 잡았어요 😅",
		Summary: fmt.Sprintf("데모 시나리오 기반이라 아래처럼 질문해주면 바로 답할 수 있어요. (%s)", ctx.Market.Label()),
		Bullets: []string{
			"“어디로 인증기관 매칭할까?”",
			"“규제진단 FAIL 고치는 팁 알려줘”",
			"“FAIL 항목 플레이북 보여줘”",
			"“파일저장소 자동 업로드가 안돼요”",
			"“(Docs) 필수 서류 중 뭐가 부족해?”",
		},
	})
}

var scenarioAnswers = map[Scenario]func(ctx domain.ChatContext) Answer{
	ScenarioLabsWhere: func(ctx domain.ChatContext) Answer {
		return Answer{
			Title:   fmt.Sprintf("어디로 인증기관 매칭할까요? (%s)", ctx.Market.Label()),
			Summary: "결정은 간단해요. “기간/비용/리스크” 중 **1순위**만 정하면 추천이 딱 나옵니다.",
			Bullets: []string{
				"기간 우선: 일정이 가장 짧은 곳(서류검토 빠른 곳)",
				"비용 우선: 견적이 낮고 필수 시험만 구성해주는 곳",
				"리스크 우선: 유사 제품 경험 + 보유 인증(KOLAS/UL/CE) + 문서검토 역량",
			},
			Next: []string{
				"1순위가 기간/비용/리스크 중 무엇인지 알려주세요",
				"제품이 ‘무선/자율주행 기능 포함’인지 알려주세요",
			},
			Ask: []string{"지금 제일 급한 건 ‘기간’이에요? ‘비용’이에요? ‘리스크 최소화’에요?"},
		}
	},
	ScenarioLabsBestReason: func(domain.ChatContext) Answer {
		return Answer{
			Title:   "AI Best Match는 왜 Best인가요?",
			Summary: "Best Match는 단순 점수가 아니라 **요구 규격 충족 가능성**과 **커뮤니케이션 효율**이 높은 곳이에요.",
			Bullets: []string{
				"해당 국가 규정 경험(CE/UL/FCC/CCC) + 유사 시험 수행 이력",
				"필수 서류 기반으로 ‘보완 요청’이 명확한 기관",
				"시험 + 문서검토를 같이 제공해 일정 리스크가 낮음",
			},
			Next: []string{"기관 카드에서 ‘보유 인증’과 ‘AI 분석 코멘트’를 기준으로 1곳 먼저 선택해보세요"},
		}
	},
	ScenarioDiagFixTips: func(ctx domain.ChatContext) Answer {
		r := ctx.Remediation
		if r.Total == 0 {
			return Answer{
				Title:   "규제진단 FAIL을 고치는 팁",
				Summary: "지금은 대시보드에 연결된 Action Items가 0개라서, 우선 “FAIL 목록이 publish되는지”부터 확인해야 해요.",
				Bullets: []string{
					"규제진단 결과 생성 후 FAIL 항목이 시장별로 publish 되는지",
					"대시보드가 시장별 보완사항 목록을 받아 표시하는지",
				},
				Next: []string{"규제진단 화면에서 진단을 끝까지 실행한 뒤 대시보드를 다시 확인하세요"},
			}
		}
		return Answer{
			Title:   fmt.Sprintf("규제진단 FAIL 개선 가이드 (%s)", ctx.Market.Label()),
			Summary: fmt.Sprintf("현재 개선 필요 항목: **%d개** (완료 %d / 남음 %d)", r.Total, r.Done, r.Pending),
			Bullets: []string{
				"Critical/High 먼저 처리(안전/인터록/비상정지/가드/라벨링)",
				"문서로 해결 가능한 FAIL(경고문/매뉴얼/표준 리스트 누락)부터 빠르게 PASS 전환",
				"회로도 REV 최신 + 적용표준 리스트 정리 → 시험소 커뮤니케이션 속도 상승",
			},
			Next: []string{"FAIL 목록을 ‘설계조치’ vs ‘문서보완’으로 나누고, High/Critical 3개부터 처리"},
			Ask:  []string{"“FAIL 플레이북”이라고 입력하면 우선순위 목록에서 항목별 개선 가이드를 만들어줄게요."},
		}
	},
	ScenarioDiagActionSummary: func(ctx domain.ChatContext) Answer {
		r := ctx.Remediation
		if r.Total == 0 {
			return Answer{
				Title:   "대시보드 규제진단 보완사항(조치율) 요약",
				Summary: fmt.Sprintf("현재 %s 기준 Action Items가 아직 없습니다.", ctx.Market.Label()),
				Bullets: []string{"규제진단 실행 후 FAIL이 publish 되어야 대시보드에 표시됩니다."},
			}
		}
		return Answer{
			Title:   "대시보드 규제진단 보완사항(조치율) 요약",
			Summary: fmt.Sprintf("현재 %s 기준 Action Items: **%d개**", ctx.Market.Label(), r.Total),
			Bullets: []string{
				fmt.Sprintf("완료: %d개", r.Done),
				fmt.Sprintf("진행/대기: %d개", r.Pending),
				"조치율은 완료 비율로 계산됩니다.",
			},
		}
	},
	ScenarioRepoAutofillHelp: func(domain.ChatContext) Answer {
		return Answer{
			Title:   "파일저장소 자동 업로드가 안돼요",
			Summary: "자동 업로드는 **파일 이름(키워드)** 매칭이라서, 아래 3가지만 보면 대부분 해결돼요.",
			Bullets: []string{
				"저장소에 실제 파일이 업로드되어 있는지",
				"필수 서류 이름과 파일명이 확장자/대소문자/구분자를 빼고 같은지 (예: RT100_BOM.xlsx)",
				"파일명에 버전 접미사(_v2 등)가 붙어 있지 않은지",
			},
			Next: []string{"저장소에 실제 업로드된 파일 ‘파일명’ 1개만 알려주세요(예: RT100_BOM_v3.xlsx)"},
		}
	},
	ScenarioRepoPickerHelp: func(ctx domain.ChatContext) Answer {
		return Answer{
			Title:   "저장소 선택 눌렀는데 안 떠요",
			Summary: fmt.Sprintf("현재 저장소에 올라간 파일은 **%d건**이에요. 0건이면 선택할 대상이 없어서 목록이 비어 보여요.", ctx.RepoUploadedCount),
			Bullets: []string{
				"현재 프로젝트가 선택되어 있는지",
				"파일 업로드가 같은 프로젝트에 되었는지",
				"업로드 후 목록을 새로 불러왔는지",
			},
			Next: []string{"우선 저장소 화면에서 파일 목록이 보이는지부터 확인해보세요"},
		}
	},
	ScenarioDocsWhatMissing: func(ctx domain.ChatContext) Answer {
		return Answer{
			Title:   fmt.Sprintf("필수 서류 중 뭐가 부족한가요? (%s)", ctx.Market.Label()),
			Summary: fmt.Sprintf("지금 업로드된 서류: **%d건**", ctx.UploadedCount),
			Bullets: []string{
				"보통 필수는: 도면/회로도, 시험(계획/성적), 매뉴얼, 위험성평가/체크리스트",
				"필수 일부 누락이어도 ‘초안’은 생성 가능",
			},
			Next: []string{"Not Uploaded로 남아있는 항목 1~2개만 먼저 채우면 초안 품질이 확 좋아져요"},
			Ask:  []string{"현재 Not Uploaded로 남아있는 항목 이름을 2개만 말해줘도 우선순위 정리해줄게요."},
		}
	},
	ScenarioDocsDraftOK: func(domain.ChatContext) Answer {
		return Answer{
			Title:   "필수 서류가 부족해도 생성 가능한가요?",
			Summary: "가능합니다. 대신 시스템이 ‘추정’을 많이 해서 초안 품질이 제한될 수 있어요.",
			Bullets: []string{
				"초안 단계: 구조/목차/필수 문구/형식 확보",
				"정식 단계: 시험성적서/사양/도면 수치 반영",
			},
			Next: []string{"초안 생성 → 저장소 파일 채우기 → 정식 생성 흐름이 가장 현실적입니다."},
		}
	},
	ScenarioDocsAutofillTips: func(domain.ChatContext) Answer {
		return Answer{
			Title:   "Docs에서 파일저장소 자동 업로드 팁",
			Summary: "제출 서류 입력 항목과 저장소 파일은 이름 기준으로 연결돼요.",
			Bullets: []string{
				"입력 항목 이름과 저장소 파일명이 정규화 후 같아야 자동으로 채워짐",
				"이름이 다르면 파일명을 필수 서류 이름에 맞춰 다시 올리는 게 가장 빠름",
			},
			Next: []string{"체크리스트에서 Not Uploaded 항목 이름을 확인하고 같은 이름으로 파일을 올려보세요."},
		}
	},
	ScenarioDocsOutputExplain: func(domain.ChatContext) Answer {
		return Answer{
			Title:   "DoC/TCF/Risk Report가 각각 뭐예요?",
			Summary: "한 줄로 말하면 ‘제출 패키지’ 구성요소들입니다.",
			Bullets: []string{
				"DoC: 규정/표준을 만족한다고 선언",
				"TCF: 설계근거/시험근거/리스크평가 등 기술문서 패키지",
				"Risk Report: 위험요소 식별/저감 조치 정리(ISO 12100 등)",
			},
			Next: []string{"초안 생성 후엔 ‘시험소 커뮤니케이션용’으로 목차/문구부터 다듬는 걸 추천해요."},
		}
	},
	ScenarioDocsNextStep: func(domain.ChatContext) Answer {
		return Answer{
			Title:   "문서 생성 후 다음 단계는 뭐부터 해요?",
			Summary: "문서 생성이 끝나면 시험소로 넘기기 전에 3가지만 체크하면 됩니다.",
			Bullets: []string{
				"적용 표준 리스트가 국가(EU/US)에 맞는지",
				"REV(도면/회로도) 최신본 기준인지",
				"경고문/라벨 문구가 실제 제품에 반영 가능한지",
			},
			Next: []string{"이 3가지만 확정되면 → 국내 인증기관 매칭에서 커뮤니케이션이 엄청 빨라져요"},
		}
	},
}

// TriageList renders the numbered pick list for the fail-fix flow.
func TriageList(items []domain.RemediationItem, ctx domain.ChatContext) string {
	if len(items) == 0 {
		return FormatAnswer(Answer{
			Title:   fmt.Sprintf("FAIL 개선 플레이북 (%s)", ctx.Market.Label()),
			Summary: "지금은 미완료 FAIL 항목이 없어요. 🎉",
			Next:    []string{"규제진단을 다시 실행했다면 결과가 대시보드에 publish 되었는지 확인하세요"},
		})
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = fmt.Sprintf("%d. [%s] %s (%s)", i+1, orDash(string(item.Priority)), orDash(item.Task), orDash(string(item.Status)))
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "**FAIL 개선 플레이북 (%s)**\n\n", ctx.Market.Label())
	sb.WriteString("우선순위가 높은 미완료 항목이에요. 개선 가이드를 볼 항목 번호를 입력해주세요. (예: 1번)\n\n")
	sb.WriteString(strings.Join(lines, "\n"))
	return sb.String()
}

// OutOfRange explains that index is not on the offered list.
func OutOfRange(index, count int) string {
	return FormatAnswer(Answer{
		Title:   "해당 번호의 항목이 없어요",
		Summary: fmt.Sprintf("%d번 항목은 목록에 없습니다. 1~%d 중에서 골라주세요.", index, count),
	})
}

// Reprompt asks again for a number while a pick is pending.
func Reprompt(count int) string {
	return fmt.Sprintf("번호로 골라주세요. (1~%d, 예: 2번)", count)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
