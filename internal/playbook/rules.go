package playbook

import "github.com/rcliao/certimatch/internal/domain"

// Rule contributes its bundle when any trigger occurs in the task text.
type Rule struct {
	Name     string
	Triggers []string
	Bundle   domain.Bundle
}

// Baseline is included in every playbook after the firing rules.
var Baseline = domain.Bundle{
	RootCause: []string{
		"설계 단계에서 적용 표준 요구사항이 도면/BOM에 반영되지 않음",
		"시험소 제출 전 내부 체크리스트 검증 누락",
	},
	QuickFix: []string{
		"FAIL 근거(조항/측정값/사진)를 한 장으로 정리해 담당자와 공유",
		"임시 조치 가능 여부를 설계/구매 담당과 당일 확인",
	},
	ProperFix: []string{
		"설계 변경(ECO) 발행 후 도면/BOM REV 갱신",
		"적용 표준 리스트와 기술문서(TCF)에 변경 내용 반영",
	},
	Evidence: []string{
		"변경 전/후 사진 또는 도면 캡처",
		"관련 부품 인증서 또는 시험 성적서 사본",
	},
	Validation: []string{
		"내부 재점검 체크리스트로 PASS 확인 후 규제진단 재실행",
		"시험소에 사전 검토(Pre-review) 요청",
	},
	Pitfalls: []string{
		"도면만 수정하고 실제 시료/양산품에 반영하지 않음",
		"매뉴얼/라벨 등 연관 문서 업데이트 누락",
	},
}

// DefaultRules is evaluated in order; earlier rules contribute first.
var DefaultRules = []Rule{
	{
		Name:     "emergency-stop",
		Triggers: []string{"비상정지", "e-stop", "estop", "emergency", "iso13850"},
		Bundle: domain.Bundle{
			StandardGuess: "ISO 13850 (Emergency Stop)",
			RootCause: []string{
				"비상정지 버튼 색상(적색 액추에이터/황색 배경) 규정 미적용",
				"조작 위치에서 즉시 도달하기 어려운 설치 위치",
			},
			QuickFix: []string{
				"비상정지 버튼 색상(적색)·배경(황색)과 설치 위치(지면 기준 0.6~1.7m) 현장 점검",
				"황색 배경 명판을 우선 부착해 임시 보완",
			},
			ProperFix: []string{
				"ISO 13850 준수 래칭형(버섯머리) 인증 부품으로 교체",
				"정지 카테고리(0/1) 회로를 EN 60204-1 기준으로 재검토",
			},
			Evidence: []string{
				"비상정지 버튼 데이터시트 및 인증서",
				"설치 높이 측정 사진",
			},
			Validation: []string{
				"비상정지 작동 후 수동 리셋 전 재기동 불가 확인",
				"정지 시간 측정 기록 작성",
			},
			Pitfalls: []string{
				"리셋만으로 기계가 자동 재기동되는 회로 구성",
				"주변 가드/커버가 버튼 접근을 방해",
			},
		},
	},
	{
		Name:     "pinch-guard",
		Triggers: []string{"협착", "끼임", "가드", "커버", "guard", "pinch", "iso13854"},
		Bundle: domain.Bundle{
			StandardGuess: "ISO 13854 (Minimum Gaps)",
			RootCause: []string{
				"가동부 간 간격이 8~25mm 범위에 있어 손가락 협착 위험",
				"고정식 가드 미설치 또는 공구 없이 탈거 가능",
			},
			QuickFix: []string{
				"CAD에서 가동부 최소 간격 재측정(손가락 25mm / 손 100mm / 팔 120mm)",
				"임시 고정 커버 설치",
			},
			ProperFix: []string{
				"간격을 25mm 이상으로 확대하거나 8mm 이하로 축소하는 설계 변경",
				"공구로만 탈거 가능한 고정식 가드 적용",
			},
			Evidence: []string{
				"간격 측정 CAD 캡처",
				"가드 고정 방식 사진",
			},
			Validation: []string{
				"시험 프로브(손가락 모형)로 위험 구역 접근 불가 확인",
			},
			Pitfalls: []string{
				"커버 추가로 정비 접근성이 떨어져 현장에서 제거됨",
			},
		},
	},
	{
		Name:     "power-cable",
		Triggers: []string{"케이블", "전원코드", "cable", "power cord", "h05vv", "h07rn", "iec60227"},
		Bundle: domain.Bundle{
			StandardGuess: "IEC 60227 (PVC Insulated Cables)",
			RootCause: []string{
				"비인증(HAR 미표시) 전원 케이블 사용",
				"BOM에 케이블 규격(H05VV-F 등) 미기재",
			},
			QuickFix: []string{
				"BOM에서 전원 케이블 제조사/모델/규격 표기 확인",
				"HAR 마크 인증품 재고 확인",
			},
			ProperFix: []string{
				"H05VV-F 또는 H07RN-F 인증 케이블로 교체 후 BOM REV 갱신",
			},
			Evidence: []string{
				"케이블 HAR/VDE 인증서",
				"BOM 변경 이력",
			},
			Validation: []string{
				"케이블 외피 각인 사진으로 규격 일치 확인",
			},
			Pitfalls: []string{
				"국내 KC 케이블을 그대로 사용",
				"플러그/커넥터 조합의 인증 범위 미확인",
			},
		},
	},
	{
		Name:     "power-plug",
		Triggers: []string{"플러그", "plug", "ccc", "iec60884", "gb2099"},
		Bundle: domain.Bundle{
			StandardGuess: "IEC 60884-1 / GB 2099.1 (Plugs)",
			RootCause: []string{
				"목표 국가 강제 인증이 없는 전원 플러그 사용",
			},
			QuickFix: []string{
				"플러그 인증 마크(VDE/CCC/UL) 확인",
			},
			ProperFix: []string{
				"목표 국가 인증 코드세트로 교체",
			},
			Evidence: []string{
				"플러그 인증서 사본",
			},
			Validation: []string{
				"인증서 모델명과 실제 부품 각인 일치 확인",
			},
			Pitfalls: []string{
				"코드세트 전체가 아닌 플러그 단품 인증만 확보",
			},
		},
	},
	{
		Name:     "circuit-breaker",
		Triggers: []string{"차단기", "breaker", "ul489"},
		Bundle: domain.Bundle{
			StandardGuess: "UL 489 (Molded-Case Circuit Breakers)",
			RootCause: []string{
				"UL 1077 보조 보호기(Supplementary Protector)를 주 차단기로 사용",
			},
			QuickFix: []string{
				"메인 차단기 정격과 인증 종류(UL 489 / UL 1077) 확인",
			},
			ProperFix: []string{
				"UL 489 Listed 차단기로 교체하고 단락 정격(SCCR) 재계산",
			},
			Evidence: []string{
				"차단기 UL 인증서(파일 번호)",
				"SCCR 계산서",
			},
			Validation: []string{
				"회로도와 패널 실물의 차단기 모델 일치 확인",
			},
			Pitfalls: []string{
				"UL Recognized 부품을 Listed 부품으로 오인",
			},
		},
	},
	{
		Name:     "battery",
		Triggers: []string{"배터리", "battery", "ul2054", "ul1642", "iec62133"},
		Bundle: domain.Bundle{
			StandardGuess: "UL 2054 / IEC 62133-2 (Batteries)",
			RootCause: []string{
				"배터리 셀/팩 인증 성적서 미확보",
			},
			QuickFix: []string{
				"공급사에 셀(UL 1642)·팩(UL 2054) 인증서 요청",
			},
			ProperFix: []string{
				"인증 셀 기반 팩으로 교체하거나 팩 단위 시험 의뢰",
			},
			Evidence: []string{
				"셀/팩 시험 성적서",
				"UN 38.3 운송 시험 요약",
			},
			Validation: []string{
				"성적서 모델명과 BOM 배터리 모델 일치 확인",
			},
			Pitfalls: []string{
				"셀 인증만으로 팩 인증을 대체",
			},
		},
	},
	{
		Name:     "protective-bonding",
		Triggers: []string{"접지", "grounding", "earth", "g/y", "녹/황"},
		Bundle: domain.Bundle{
			StandardGuess: "IEC 60204-1 (Protective Bonding)",
			RootCause: []string{
				"보호 접지선 색상(녹/황) 규정 미준수",
			},
			QuickFix: []string{
				"모터/프레임 접지선 색상과 단자 체결 상태 점검",
			},
			ProperFix: []string{
				"녹/황 보호 도체로 교체하고 접지 단자에 PE 표시",
			},
			Evidence: []string{
				"접지 연속성 측정 기록",
			},
			Validation: []string{
				"보호 본딩 연속성 시험 수행",
			},
			Pitfalls: []string{
				"도장면 위에 접지 단자를 체결해 도통 불량",
			},
		},
	},
	{
		Name:     "safety-label",
		Triggers: []string{"라벨", "경고문", "명판", "label", "z535", "signal word"},
		Bundle: domain.Bundle{
			StandardGuess: "ANSI Z535 / ISO 3864 (Safety Signs)",
			RootCause: []string{
				"경고 표지의 신호어/색상/픽토그램이 목표 국가 규격과 불일치",
			},
			QuickFix: []string{
				"라벨 문안의 신호어(DANGER/WARNING/CAUTION)와 현지어 병기 여부 확인",
			},
			ProperFix: []string{
				"ISO 3864 / ANSI Z535 양식으로 라벨을 재디자인하고 매뉴얼 문구와 통일",
			},
			Evidence: []string{
				"라벨 시안 및 부착 위치 사진",
			},
			Validation: []string{
				"라벨 내구성(마모/용제) 확인",
			},
			Pitfalls: []string{
				"매뉴얼 경고문과 제품 라벨 문구 불일치",
			},
		},
	},
	{
		Name:     "manual",
		Triggers: []string{"매뉴얼", "설명서", "manual"},
		Bundle: domain.Bundle{
			StandardGuess: "ISO 20607 (Instruction Handbook)",
			RootCause: []string{
				"사용자 매뉴얼에 필수 안전 정보 또는 현지어 누락",
			},
			QuickFix: []string{
				"매뉴얼 목차에 의도된 사용·잔류 위험·정비 절차 항목이 있는지 확인",
			},
			ProperFix: []string{
				"ISO 20607 목차 기준으로 매뉴얼 개정 후 현지어 번역 검수",
			},
			Evidence: []string{
				"개정 매뉴얼 PDF 및 번역 검수 기록",
			},
			Validation: []string{
				"위험성 평가의 잔류 위험이 매뉴얼에 모두 반영됐는지 대조",
			},
			Pitfalls: []string{
				"기계 번역본을 검수 없이 제출",
			},
		},
	},
	{
		Name:     "restricted-substances",
		Triggers: []string{"rohs", "유해물질"},
		Bundle: domain.Bundle{
			StandardGuess: "IEC 63000 (RoHS Technical Documentation)",
			RootCause: []string{
				"부품별 유해물질 함유 정보 미수집",
			},
			QuickFix: []string{
				"주요 부품 공급사에 RoHS 적합 선언서 요청",
			},
			ProperFix: []string{
				"부품별 재료 선언(MDS)을 수집해 RoHS 표(함유 표시)를 작성",
			},
			Evidence: []string{
				"공급사 RoHS 선언서",
				"유해물질 함유 표",
			},
			Validation: []string{
				"고위험 부품(납땜/케이블/도료) 샘플 XRF 분석",
			},
			Pitfalls: []string{
				"유효기간이 지난 공급사 선언서를 그대로 사용",
			},
		},
	},
	{
		Name:     "stability",
		Triggers: []string{"전도", "안정성", "stability", "iso13482"},
		Bundle: domain.Bundle{
			StandardGuess: "ISO 13482 (Stability)",
			RootCause: []string{
				"무게중심(CoG)이 경사 조건에서 지지 범위를 벗어남",
			},
			QuickFix: []string{
				"10도 경사 정지 조건으로 CAD 안정성 시뮬레이션 재실행",
			},
			ProperFix: []string{
				"배터리/중량물 배치를 낮추거나 휠베이스 확대",
			},
			Evidence: []string{
				"무게중심 계산서 및 시뮬레이션 결과",
			},
			Validation: []string{
				"실물 경사대 정지 시험",
			},
			Pitfalls: []string{
				"적재물(최대 하중) 조건을 빼고 계산",
			},
		},
	},
	{
		Name:     "sharp-edge",
		Triggers: []string{"모서리", "sharp edge", "sharp"},
		Bundle: domain.Bundle{
			StandardGuess: "ISO 12100 (Risk Assessment)",
			RootCause: []string{
				"노출 부위 모서리 반경이 2.0mm 미만",
			},
			QuickFix: []string{
				"외관 노출 모서리의 곡률 반경 측정",
			},
			ProperFix: []string{
				"모서리 R2.0 이상 라운드 처리 또는 보호 캡 적용",
			},
			Evidence: []string{
				"모서리 반경 측정 기록",
			},
			Validation: []string{
				"손 접촉 가능 부위 전수 점검",
			},
			Pitfalls: []string{
				"도장 후 버(burr)가 남아 재발",
			},
		},
	},
}
