package quiz

import (
	"strings"

	"github.com/aymerick/raymond"
)

// Option é uma alternativa de resposta de um passo.
type Option struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Value       string `json:"value"`
	AutoAdvance bool   `json:"autoAdvance,omitempty"`
}

// Validation descreve as regras de preenchimento exibidas pelo passo.
type Validation struct {
	Required      bool `json:"required,omitempty"`
	MinSelections int  `json:"minSelections,omitempty"`
	MaxSelections int  `json:"maxSelections,omitempty"`
}

// Step é o conteúdo de exibição de um passo do funil.
type Step struct {
	ID         int         `json:"id"`
	Type       StepType    `json:"type"`
	Title      string      `json:"title"`
	Content    string      `json:"content,omitempty"`
	Options    []Option    `json:"options,omitempty"`
	Validation *Validation `json:"validation,omitempty"`
}

// Textos dos botões de ação.
var CTATexts = map[string]string{
	"primary": "Continuar",
	"final":   "Quero dormir naturalmente agora",
	"back":    "Voltar",
	"loading": "Aguarde...",
}

// Steps é a tabela estática de conteúdo dos 18 passos (PT-BR).
var Steps = map[int]Step{
	1: {
		ID:      1,
		Type:    StepPresentation,
		Title:   "Durma naturalmente e acorde cheio de energia em apenas 7 dias",
		Content: "Descubra se você pode eliminar a insônia naturalmente (Questionário de 1 minuto).",
	},
	2: {
		ID:    2,
		Type:  StepSingleChoice,
		Title: "Qual é a sua faixa etária?",
		Options: []Option{
			{ID: "18-28", Label: "18 a 28 anos", Value: "18-28", AutoAdvance: true},
			{ID: "29-38", Label: "29 a 38 anos", Value: "29-38", AutoAdvance: true},
			{ID: "39-49", Label: "39 a 49 anos", Value: "39-49", AutoAdvance: true},
			{ID: "50+", Label: "50 anos ou mais", Value: "50+", AutoAdvance: true},
		},
	},
	3: {
		ID:      3,
		Type:    StepPresentation,
		Title:   "Você não está sozinho(a)",
		Content: "Mais de 1.000 pessoas já voltaram a dormir naturalmente com este método.",
	},
	4: {
		ID:    4,
		Type:  StepSingleChoice,
		Title: "Qual situação descreve melhor o seu sono?",
		Options: []Option{
			{ID: "demoro", Label: "Demoro mais de 30 min para adormecer", Value: "demoro", AutoAdvance: true},
			{ID: "acordo_varias", Label: "Acordo várias vezes durante a noite", Value: "acordo_varias", AutoAdvance: true},
			{ID: "acordo_cansado", Label: "Acordo cansado(a), mesmo dormindo 7-8h", Value: "acordo_cansado", AutoAdvance: true},
			{ID: "sem_problemas", Label: "Não tenho problemas para dormir", Value: "sem_problemas", AutoAdvance: true},
		},
	},
	5: {
		ID:    5,
		Type:  StepSingleChoice,
		Title: "Quantas horas você dorme por noite?",
		Options: []Option{
			{ID: "<5", Label: "Menos de 5 horas", Value: "<5", AutoAdvance: true},
			{ID: "5-6", Label: "5 a 6 horas", Value: "5-6", AutoAdvance: true},
			{ID: "7-8", Label: "7 a 8 horas", Value: "7-8", AutoAdvance: true},
			{ID: ">8", Label: "Mais de 8 horas", Value: ">8", AutoAdvance: true},
		},
	},
	6: {
		ID:         6,
		Type:       StepForm,
		Title:      "Para personalizar seus resultados...",
		Content:    "Precisamos de algumas informações básicas:",
		Validation: &Validation{Required: true},
	},
	7: {
		ID:    7,
		Type:  StepSingleChoice,
		Title: "Você já tentou remédios para dormir?",
		Options: []Option{
			{ID: "frequente", Label: "Uso frequentemente (melatonina, rivotril, etc.)", Value: "frequente", AutoAdvance: true},
			{ID: "tentei_nao_resolveu", Label: "Já tentei mas não resolveu", Value: "tentei_nao_resolveu", AutoAdvance: true},
			{ID: "pensei", Label: "Já pensei em tentar", Value: "pensei", AutoAdvance: true},
			{ID: "nunca", Label: "Nunca tentei", Value: "nunca", AutoAdvance: true},
		},
	},
	8: {
		ID:    8,
		Type:  StepSingleChoice,
		Title: "Com que frequência você sente ansiedade?",
		Options: []Option{
			{ID: "sempre", Label: "Sempre", Value: "sempre", AutoAdvance: true},
			{ID: "muitas", Label: "Muitas vezes", Value: "muitas", AutoAdvance: true},
			{ID: "raramente", Label: "Raramente", Value: "raramente", AutoAdvance: true},
			{ID: "nunca", Label: "Nunca", Value: "nunca", AutoAdvance: true},
		},
	},
	9: {
		ID:      9,
		Type:    StepMultipleChoice,
		Title:   "Como a falta de sono tem afetado você?",
		Content: "Selecione todas as opções que se aplicam:",
		Options: []Option{
			{ID: "concentracao", Label: "Dificuldade de concentração", Value: "concentracao"},
			{ID: "memoria", Label: "Problemas de memória", Value: "memoria"},
			{ID: "humor", Label: "Mudanças de humor/irritabilidade", Value: "humor"},
			{ID: "energia", Label: "Falta de energia durante o dia", Value: "energia"},
			{ID: "trabalho", Label: "Queda na produtividade no trabalho", Value: "trabalho"},
			{ID: "relacionamentos", Label: "Impacto nos relacionamentos", Value: "relacionamentos"},
		},
		Validation: &Validation{MinSelections: 1},
	},
	10: {
		ID:      10,
		Type:    StepMultipleChoice,
		Title:   "Quais consequências mais te preocupam?",
		Content: "Selecione suas principais preocupações:",
		Options: []Option{
			{ID: "saude_mental", Label: "Problemas de saúde mental (depressão, ansiedade)", Value: "saude_mental"},
			{ID: "sistema_imune", Label: "Sistema imunológico enfraquecido", Value: "sistema_imune"},
			{ID: "ganho_peso", Label: "Ganho de peso", Value: "ganho_peso"},
			{ID: "envelhecimento", Label: "Envelhecimento precoce", Value: "envelhecimento"},
			{ID: "performance", Label: "Queda na performance física/mental", Value: "performance"},
			{ID: "doencas", Label: "Risco de doenças crônicas", Value: "doencas"},
		},
		Validation: &Validation{MinSelections: 1},
	},
	11: {
		ID:      11,
		Type:    StepMultipleChoice,
		Title:   "O que você mais deseja alcançar?",
		Content: "Selecione seus objetivos principais:",
		Options: []Option{
			{ID: "adormecer_rapido", Label: "Adormecer rapidamente (em até 10 minutos)", Value: "adormecer_rapido"},
			{ID: "sono_profundo", Label: "Ter um sono profundo e reparador", Value: "sono_profundo"},
			{ID: "acordar_disposto", Label: "Acordar disposto(a) e com energia", Value: "acordar_disposto"},
			{ID: "parar_remedios", Label: "Parar de depender de remédios", Value: "parar_remedios"},
			{ID: "reduzir_ansiedade", Label: "Reduzir a ansiedade naturalmente", Value: "reduzir_ansiedade"},
			{ID: "melhorar_humor", Label: "Melhorar o humor e disposição", Value: "melhorar_humor"},
		},
		Validation: &Validation{MinSelections: 1},
	},
	12: {
		ID:      12,
		Type:    StepPresentation,
		Title:   "Depoimentos Reais",
		Content: `"Em apenas 5 dias consegui dormir sem melatonina pela primeira vez em 2 anos. O método é simples e realmente funciona!" - Maria, 34 anos`,
	},
	13: {
		ID:    13,
		Type:  StepSingleChoice,
		Title: "Quanto você conhece sobre higiene do sono?",
		Options: []Option{
			{ID: "nada", Label: "Nada, é a primeira vez que ouço falar", Value: "nada", AutoAdvance: true},
			{ID: "pouco", Label: "Já ouvi falar, mas não sei aplicar", Value: "pouco", AutoAdvance: true},
			{ID: "tentei", Label: "Já tentei algumas técnicas sem sucesso", Value: "tentei", AutoAdvance: true},
		},
	},
	14: {
		ID:    14,
		Type:  StepSingleChoice,
		Title: "O que você prefere para melhorar seu sono?",
		Options: []Option{
			{ID: "profundo", Label: "Programa completo e aprofundado", Value: "profundo", AutoAdvance: true},
			{ID: "rapido_sem_remedio", Label: "Solução rápida sem remédios", Value: "rapido_sem_remedio", AutoAdvance: true},
			{ID: "energia", Label: "Foco em acordar com mais energia", Value: "energia", AutoAdvance: true},
			{ID: "reduzir_ansiedade", Label: "Reduzir ansiedade para dormir melhor", Value: "reduzir_ansiedade", AutoAdvance: true},
		},
	},
	15: {
		ID:      15,
		Type:    StepPresentation,
		Title:   "{{nome}}, sua jornada para dormir melhor começa agora",
		Content: "Baseado nas suas respostas, identificamos exatamente o que está sabotando seu sono.",
	},
	16: {
		ID:    16,
		Type:  StepSingleChoice,
		Title: "Como você se sente sobre mudar seus hábitos de sono?",
		Options: []Option{
			{ID: "decidido", Label: "Estou decidido(a) a mudar agora", Value: "decidido", AutoAdvance: true},
			{ID: "mudar_habitos", Label: "Quero mudar mas preciso de ajuda", Value: "mudar_habitos", AutoAdvance: true},
			{ID: "medo_falhar", Label: "Tenho medo de tentar e falhar novamente", Value: "medo_falhar", AutoAdvance: true},
		},
	},
	17: {
		ID:      17,
		Type:    StepLoading,
		Title:   "Estamos analisando suas respostas… ⏳",
		Content: "Preparando seu plano personalizado para dormir naturalmente...",
	},
	18: {
		ID:      18,
		Type:    StepPresentation,
		Title:   "{{nome}}, seu plano personalizado para dormir naturalmente está pronto!",
		Content: "Descubra o método que já ajudou mais de 1.000 pessoas a voltarem a dormir naturalmente.",
	},
}

// UnknownStep é o conteúdo de fallback para um número de passo fora da
// tabela. Bug de configuração de conteúdo não derruba o funil.
var UnknownStep = Step{
	Type:  StepPresentation,
	Title: "Passo desconhecido",
}

// PersonalizedContent resolve o conteúdo de exibição de um passo:
// interpola {{nome}} via Handlebars e seleciona variantes de texto
// conforme as flags de ramificação. Puro e determinístico.
func PersonalizedContent(step int, s *State) Step {
	base, ok := Steps[step]
	if !ok {
		out := UnknownStep
		out.ID = step
		return out
	}

	if s.Nome != "" {
		base.Title = interpolate(base.Title, s.Nome)
		base.Content = interpolate(base.Content, s.Nome)
	}

	switch step {
	case 12:
		// Depoimento varia conforme o ramo.
		if s.Flags.BranchHeavyRemedios {
			base.Content = `"Consegui parar com a melatonina em 1 semana! Agora durmo naturalmente e acordo muito mais descansada." - Ana, 29 anos`
		} else if s.Flags.BranchHighAnsiedade {
			base.Content = `"A ansiedade era o que mais atrapalhava meu sono. Com as técnicas do método, consegui relaxar e dormir profundamente." - Carlos, 42 anos`
		}

	case 15:
		if s.Flags.BranchHeavyRemedios {
			base.Content = "Identificamos que você pode parar de depender de remédios para dormir. Vamos mostrar exatamente como fazer isso de forma segura e natural."
		} else if s.Flags.BranchHighAnsiedade {
			base.Content = "A ansiedade está sabotando seu sono. Nosso método inclui técnicas específicas para acalmar sua mente antes de dormir."
		} else if s.Flags.Experienced {
			base.Content = "Você já tentou outras técnicas sem sucesso. Nosso método é diferente - baseado em ciência e resultados comprovados."
		}

	case 18:
		desc := "Método completo para dormir naturalmente"
		switch s.Direcionamento {
		case DirecionamentoRapidoSemRemedio:
			desc = "Solução rápida para dormir sem remédios"
		case DirecionamentoEnergia:
			desc = "Programa focado em acordar com energia"
		case DirecionamentoReduzirAnsiedade:
			desc = "Método para reduzir ansiedade e melhorar o sono"
		}
		base.Content = desc + ". Acesso imediato por apenas R$ 67."
	}

	return base
}

// interpolate renderiza {{nome}} no template Handlebars do conteúdo.
// Template malformado não é fatal: devolve o texto original.
func interpolate(tpl, nome string) string {
	if !strings.Contains(tpl, "{{") {
		return tpl
	}
	// SafeString evita o escape HTML padrão do Handlebars no nome.
	out, err := raymond.Render(tpl, map[string]interface{}{"nome": raymond.SafeString(nome)})
	if err != nil {
		return tpl
	}
	return out
}
