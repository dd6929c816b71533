package quiz

import (
	"math"
	"strings"
)

// Fluxo de ramificação do funil:
//
//	1 → 2 → 3 → 4 ─┬─ "sem_problemas" → 6 (pula 5; depois pula 7,8,9)
//	               └─ demais → 5 → 6
//	6 ─┬─ branch_no_problems → 10
//	   └─ demais → 7 → 8 ─┬─ ansiedade "nunca" → 10 (pula 9)
//	                      └─ demais → 9 → 10
//	10 → 11 → 12 → 13 → 14 → 15 → 16 → 17 → 18 (terminal)
//
// A navegação reversa re-deriva o predecessor a partir das flags e
// respostas atuais, e não de uma pilha de histórico.

// StepType classifica o passo para renderização.
type StepType string

const (
	StepPresentation   StepType = "presentation"
	StepSingleChoice   StepType = "single_choice"
	StepMultipleChoice StepType = "multiple_choice"
	StepForm           StepType = "form"
	StepLoading        StepType = "loading"
)

// NavigationResult é a decisão de navegação retornada pelo engine.
// O engine nunca retorna erro de Go: toda falha vira um valor que o
// chamador pode exibir e tratar.
type NavigationResult struct {
	TargetStep      int    `json:"targetStep"`
	CanProceed      bool   `json:"canProceed"`
	ValidationError string `json:"validationError,omitempty"`
}

// StepValidation é o resultado da validação de completude de um passo.
type StepValidation struct {
	IsValid      bool   `json:"isValid"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// NextStep calcula o próximo passo a partir do estado atual.
// Primeiro valida a completude do passo corrente; se inválido, não há
// movimento e o erro de validação é devolvido no resultado.
func NextStep(s *State) NavigationResult {
	current := s.Step

	if v := ValidateStep(s, current); !v.IsValid {
		return NavigationResult{
			TargetStep:      current,
			CanProceed:      false,
			ValidationError: v.ErrorMessage,
		}
	}

	var target int

	switch current {
	case 4:
		// Diagnóstico: caminho rápido pula o passo 5 (horas).
		if s.Diagnostico == DiagnosticoSemProblemas {
			target = 6
		} else {
			target = 5
		}

	case 6:
		// Lead: caminho rápido pula remédios/ansiedade/impactos.
		if s.Flags.BranchNoProblems {
			target = 10
		} else {
			target = 7
		}

	case 8:
		// Ansiedade "nunca" pula impactos.
		if s.Ansiedade == AnsiedadeNunca {
			target = 10
		} else {
			target = 9
		}

	case UltimoPasso:
		// Terminal: idempotente, nunca avança além do 18.
		target = UltimoPasso

	default:
		target = current + 1
		if target > UltimoPasso {
			target = UltimoPasso
		}
	}

	return NavigationResult{TargetStep: target, CanProceed: true}
}

// PrevStep calcula o passo anterior para navegação de volta.
// Para passos alcançados por salto condicional, o predecessor é
// re-derivado das flags atuais, espelhando a lógica de avanço.
func PrevStep(s *State) NavigationResult {
	current := s.Step

	if current <= PrimeiroPasso {
		return NavigationResult{TargetStep: PrimeiroPasso, CanProceed: false}
	}

	var target int

	switch current {
	case 6:
		if s.Flags.BranchNoProblems {
			target = 4 // caminho rápido veio direto do diagnóstico
		} else {
			target = 5
		}

	case 10:
		switch {
		case s.Flags.BranchNoProblems:
			target = 6
		case s.Ansiedade == AnsiedadeNunca:
			target = 8 // impactos foi pulado
		default:
			target = 9
		}

	default:
		target = current - 1
	}

	if target < PrimeiroPasso {
		target = PrimeiroPasso
	}
	return NavigationResult{TargetStep: target, CanProceed: true}
}

// NavigateToStep avança o estado passo a passo até targetStep, parando
// no primeiro passo inválido. Usado para retomar sessões em um passo
// específico sem pular validações intermediárias.
func NavigateToStep(s *State, targetStep int) NavigationResult {
	cur := s.Snapshot()

	for cur.Step < targetStep {
		res := NextStep(&cur)
		if !res.CanProceed {
			return res
		}
		cur.Step = res.TargetStep

		if cur.Step >= UltimoPasso {
			break
		}
	}

	return NavigationResult{TargetStep: cur.Step, CanProceed: true}
}

// ValidateStep verifica se o estado satisfaz a completude exigida pelo
// passo informado. É a única fonte das regras de validação: o Store
// delega para cá (ver Store.IsStepValid).
func ValidateStep(s *State, step int) StepValidation {
	switch step {
	case 1, 3, 12, 15, 17, 18:
		// Passos de apresentação são sempre válidos.
		return StepValidation{IsValid: true}

	case 2:
		if s.Idade == "" {
			return invalid("Por favor, selecione sua faixa etária")
		}

	case 4:
		if s.Diagnostico == "" {
			return invalid("Por favor, selecione uma opção")
		}

	case 5:
		if s.Horas == "" && !s.Flags.BranchNoProblems {
			return invalid("Por favor, selecione quantas horas você dorme")
		}

	case 6:
		// Ordem fixa de prioridade: nome, email, consentimento.
		if len(strings.TrimSpace(s.Nome)) < MinNomeLength {
			return invalid("Nome deve ter pelo menos 2 caracteres")
		}
		if !IsEmailValid(s.Email) {
			return invalid("Por favor, insira um email válido")
		}
		if !s.Consent {
			return invalid("É necessário concordar com o tratamento de dados para continuar")
		}

	case 7:
		if s.Remedios == "" && !s.Flags.BranchNoProblems {
			return invalid("Por favor, selecione uma opção")
		}

	case 8:
		if s.Ansiedade == "" && !s.Flags.BranchNoProblems {
			return invalid("Por favor, selecione uma opção")
		}

	case 9:
		if len(s.Impactos) == 0 && !s.Flags.BranchNoProblems && s.Ansiedade != AnsiedadeNunca {
			return invalid("Por favor, selecione pelo menos uma opção")
		}

	case 10:
		if len(s.Consequencias) == 0 {
			return invalid("Por favor, selecione pelo menos uma opção")
		}

	case 11:
		if len(s.Desejos) == 0 {
			return invalid("Por favor, selecione pelo menos uma opção")
		}

	case 13:
		if s.Conhecimento == "" {
			return invalid("Por favor, selecione uma opção")
		}

	case 14:
		if s.Direcionamento == "" {
			return invalid("Por favor, selecione uma opção")
		}

	case 16:
		if s.Micro == "" {
			return invalid("Por favor, selecione uma opção")
		}
	}

	return StepValidation{IsValid: true}
}

// Progress retorna o percentual de progresso (arredondado) do passo.
func Progress(step int) int {
	return int(math.Round(float64(step) / float64(UltimoPasso) * 100))
}

// CanGoBack indica se há passo anterior.
func CanGoBack(step int) bool {
	return step > PrimeiroPasso
}

// IsFinalStep indica se o passo é o terminal.
func IsFinalStep(step int) bool {
	return step == UltimoPasso
}

// TypeOfStep retorna o tipo fixo de renderização do passo.
func TypeOfStep(step int) StepType {
	switch step {
	case 1, 3, 12, 15, 18:
		return StepPresentation
	case 6:
		return StepForm
	case 9, 10, 11:
		return StepMultipleChoice
	case 17:
		return StepLoading
	default:
		return StepSingleChoice
	}
}

// BranchInfo descreve o caminho de ramificação ativo, para logs.
func BranchInfo(s *State) string {
	var branches []string

	if s.Flags.BranchNoProblems {
		branches = append(branches, "no_problems")
	}
	if s.Flags.BranchHeavyRemedios {
		branches = append(branches, "heavy_remedios")
	}
	if s.Flags.BranchHighAnsiedade {
		branches = append(branches, "high_ansiedade")
	}
	if s.Flags.Experienced {
		branches = append(branches, "experienced")
	}
	if s.Flags.Reassurance {
		branches = append(branches, "reassurance")
	}

	if len(branches) == 0 {
		return "default"
	}
	return strings.Join(branches, ",")
}

func invalid(msg string) StepValidation {
	return StepValidation{IsValid: false, ErrorMessage: msg}
}
