package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/term"

	"lumenportal/internal/auth"
	"lumenportal/internal/db"
	"lumenportal/internal/model"
	"lumenportal/internal/repository"
)

var emailRE = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		name     = flag.String("usuario", "", "Nome do usuario")
		email    = flag.String("email", "", "Email do usuario")
		password = flag.String("password", "", "Senha do usuario (se omitida, sera solicitada)")
		level    = flag.Int("nivel", 1, "Nivel do usuario (0=ADMIN, 1=NORMAL, 2=COMPLIANCE)")
		sector   = flag.String("setor", "", "Setor do usuario")
		dbPath   = flag.String("db", "db_users.db", "Caminho do banco SQLite")
	)
	flag.Parse()

	if *name == "" || *email == "" || *sector == "" {
		fmt.Fprintln(os.Stderr, "Erro: usuario, email e setor sao obrigatorios.")
		flag.Usage()
		return 1
	}
	if !emailRE.MatchString(*email) {
		fmt.Fprintln(os.Stderr, "Erro: email invalido.")
		return 1
	}
	parsedLevel, err := model.ParseLevel(*level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Erro: nivel deve ser 0, 1 ou 2.")
		return 1
	}

	plain := *password
	if plain == "" {
		fmt.Fprint(os.Stderr, "Senha: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Erro ao ler senha: %v\n", err)
			return 1
		}
		plain = string(raw)
	}
	if strings.TrimSpace(plain) == "" {
		fmt.Fprintln(os.Stderr, "Erro: senha vazia.")
		return 1
	}

	gormDB, err := db.NewSQLite(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro: falha ao conectar no banco: %v\n", err)
		return 1
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.LogEntry{}, &model.UserAuditLog{}); err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao preparar o banco: %v\n", err)
		return 1
	}

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)

	taken, err := users.EmailTaken(ctx, *email, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao consultar usuarios: %v\n", err)
		return 1
	}
	if taken {
		fmt.Fprintln(os.Stderr, "Erro: email ja cadastrado.")
		return 1
	}

	hash, err := auth.HashPassword(plain)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao gerar hash da senha: %v\n", err)
		return 1
	}

	user := &model.User{
		Name:         strings.TrimSpace(*name),
		Email:        strings.ToLower(strings.TrimSpace(*email)),
		PasswordHash: hash,
		Level:        parsedLevel,
		Sector:       strings.TrimSpace(*sector),
	}
	if err := users.Create(ctx, user); err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao criar usuario: %v\n", err)
		return 1
	}

	fmt.Printf("Usuario criado com sucesso (id=%d, role=%s).\n", user.ID, user.Role())
	return 0
}
