// Package database owns schema creation and seed data. Everything here is
// idempotent and runs on every startup, the same contract the desktop
// application had with its local file: create what is missing, patch columns
// added by later revisions, never drop.
package database

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// PipelineStages is the fixed funnel, in order. The seed wipes and reloads
// the stage table whenever the count diverges so ordem values stay
// contiguous.
var PipelineStages = []string{
	"Clientes e Segmentos definidos (Playbook)",
	"Oportunidades",
	"Avaliação (Dolp)",
	"Qualificação (Cliente)",
	"Proposta Técnica",
	"Proposta Comercial",
	"Negociação",
	"Avaliação do Contrato",
	"Execução do Contrato",
	"Fidelização de Clientes",
	"Histórico",
}

var ServiceTypes = []string{
	"Linha Viva Cesto Duplo",
	"Linha Viva Cesto Simples",
	"Linha Morta Pesada 7 Elementos",
	"STC",
	"Plantão",
	"Perdas",
	"Motocicleta",
	"Atendimento Emergencial",
	"Novas Ligações",
	"Corte e Religação",
	"Subestações",
	"Grupos Geradores",
}

var InitialSetores = []string{
	"Distribuição", "Geração", "Transmissão",
	"Comercialização", "Industrial", "Corporativo",
}

var InitialSegmentos = []string{
	"Utilities", "Energia Renovável", "Óleo & Gás",
	"Manutenção Industrial", "Infraestrutura Elétrica", "Telecomunicações",
}

var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS clientes (
		id SERIAL PRIMARY KEY,
		nome_empresa TEXT UNIQUE NOT NULL,
		cnpj TEXT UNIQUE,
		cidade TEXT,
		estado TEXT,
		setor_atuacao TEXT,
		segmento_atuacao TEXT,
		link_portal TEXT,
		status TEXT,
		data_atualizacao TIMESTAMPTZ DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS pipeline_estagios (
		id SERIAL PRIMARY KEY,
		nome TEXT UNIQUE NOT NULL,
		ordem INTEGER
	)`,
	`CREATE TABLE IF NOT EXISTS crm_servicos (
		id SERIAL PRIMARY KEY,
		nome TEXT UNIQUE NOT NULL,
		descricao TEXT,
		categoria TEXT,
		ativa BOOLEAN DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS crm_tipos_equipe (
		id SERIAL PRIMARY KEY,
		nome TEXT NOT NULL,
		servico_id INTEGER NOT NULL REFERENCES crm_servicos(id) ON DELETE CASCADE,
		ativa BOOLEAN DEFAULT TRUE
	)`,
	`CREATE TABLE IF NOT EXISTS oportunidades (
		id SERIAL PRIMARY KEY,
		numero_oportunidade TEXT UNIQUE,
		titulo TEXT NOT NULL,
		valor NUMERIC(14,2) DEFAULT 0,
		cliente_id INTEGER NOT NULL REFERENCES clientes(id) ON DELETE CASCADE,
		estagio_id INTEGER NOT NULL REFERENCES pipeline_estagios(id),
		data_criacao DATE,
		tempo_contrato_meses INTEGER,
		regional TEXT,
		polo TEXT,
		quantidade_bases INTEGER,
		bases_nomes TEXT,
		servicos_data TEXT,
		empresa_referencia TEXT,
		numero_edital TEXT,
		data_abertura TEXT,
		modalidade TEXT,
		contato_principal TEXT,
		link_documentos TEXT,
		faturamento_estimado NUMERIC(14,2),
		duracao_contrato INTEGER,
		mod NUMERIC(14,2),
		moi NUMERIC(14,2),
		total_pessoas INTEGER,
		margem_contribuicao NUMERIC(6,2),
		descricao_detalhada TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS crm_interacoes (
		id SERIAL PRIMARY KEY,
		oportunidade_id INTEGER NOT NULL REFERENCES oportunidades(id) ON DELETE CASCADE,
		data_interacao TEXT,
		tipo TEXT,
		resumo TEXT,
		usuario TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS crm_tarefas (
		id SERIAL PRIMARY KEY,
		oportunidade_id INTEGER NOT NULL REFERENCES oportunidades(id) ON DELETE CASCADE,
		descricao TEXT,
		data_criacao TIMESTAMPTZ DEFAULT now(),
		data_vencimento TIMESTAMPTZ,
		responsavel TEXT,
		status TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS crm_empresas_referencia (
		id SERIAL PRIMARY KEY,
		nome_empresa TEXT NOT NULL,
		tipo_servico TEXT NOT NULL,
		valor_mensal NUMERIC(14,2) NOT NULL,
		volumetria_minima NUMERIC(14,2) NOT NULL DEFAULT 0,
		valor_por_pessoa NUMERIC(14,2) NOT NULL DEFAULT 0,
		ativa BOOLEAN DEFAULT TRUE,
		data_criacao TIMESTAMPTZ DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS crm_setores (
		id SERIAL PRIMARY KEY,
		nome TEXT UNIQUE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS crm_segmentos (
		id SERIAL PRIMARY KEY,
		nome TEXT UNIQUE NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS crm_noticias (
		id SERIAL PRIMARY KEY,
		cliente_id INTEGER NOT NULL REFERENCES clientes(id) ON DELETE CASCADE,
		titulo TEXT,
		resumo TEXT,
		url TEXT,
		fonte TEXT,
		fetched_at TIMESTAMPTZ DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		nome TEXT,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		role_id INTEGER NOT NULL,
		refresh_token TEXT,
		refresh_expires_at TIMESTAMPTZ,
		refresh_revoked BOOLEAN DEFAULT FALSE,
		telegram_chat_id BIGINT
	)`,
	`CREATE TABLE IF NOT EXISTS telegram_link_codes (
		code TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ DEFAULT now()
	)`,
	// partial unique index backs the one-active-entry-per-pair invariant
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_empresa_ref_ativa
		ON crm_empresas_referencia (nome_empresa, tipo_servico) WHERE ativa`,
}

// columnPatches are columns added by later revisions; applied one by one so
// an old database upgrades in place.
var columnPatches = []string{
	`ALTER TABLE crm_empresas_referencia ADD COLUMN IF NOT EXISTS valor_por_ponto NUMERIC(14,2) NOT NULL DEFAULT 0`,
	`ALTER TABLE oportunidades ADD COLUMN IF NOT EXISTS link_documentos TEXT`,
	`ALTER TABLE oportunidades ADD COLUMN IF NOT EXISTS descricao_detalhada TEXT`,
	`ALTER TABLE users ADD COLUMN IF NOT EXISTS telegram_chat_id BIGINT`,
}

// Init creates missing tables, applies column patches and loads seed data.
func Init(db *sql.DB) error {
	for _, stmt := range createStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("criando schema: %w", err)
		}
	}
	for _, stmt := range columnPatches {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("aplicando patch de coluna: %w", err)
		}
	}
	return seed(db)
}

func seed(db *sql.DB) error {
	var n int
	if err := db.QueryRow(`SELECT count(*) FROM pipeline_estagios`).Scan(&n); err != nil {
		return fmt.Errorf("contando estágios: %w", err)
	}
	if n != len(PipelineStages) {
		tx, err := db.Begin()
		if err != nil {
			return err
		}
		defer tx.Rollback()
		if _, err := tx.Exec(`DELETE FROM pipeline_estagios`); err != nil {
			return fmt.Errorf("limpando estágios: %w", err)
		}
		for i, nome := range PipelineStages {
			if _, err := tx.Exec(
				`INSERT INTO pipeline_estagios (nome, ordem) VALUES ($1, $2) ON CONFLICT (nome) DO NOTHING`,
				nome, i,
			); err != nil {
				return fmt.Errorf("inserindo estágio %q: %w", nome, err)
			}
		}
		if err := tx.Commit(); err != nil {
			return err
		}
	}

	if err := seedList(db, "crm_servicos",
		`INSERT INTO crm_servicos (nome, categoria) VALUES ($1, 'Serviços Elétricos')`, ServiceTypes); err != nil {
		return err
	}
	if err := seedList(db, "crm_setores",
		`INSERT INTO crm_setores (nome) VALUES ($1)`, InitialSetores); err != nil {
		return err
	}
	return seedList(db, "crm_segmentos",
		`INSERT INTO crm_segmentos (nome) VALUES ($1)`, InitialSegmentos)
}

func seedList(db *sql.DB, table string, insert string, values []string) error {
	var n int
	if err := db.QueryRow(fmt.Sprintf(`SELECT count(*) FROM %s`, pq.QuoteIdentifier(table))).Scan(&n); err != nil {
		return fmt.Errorf("contando %s: %w", table, err)
	}
	if n > 0 {
		return nil
	}
	for _, v := range values {
		if _, err := db.Exec(insert, v); err != nil {
			return fmt.Errorf("populando %s: %w", table, err)
		}
	}
	return nil
}
