package service

// User-facing messages. These are kept byte-identical to the original portal
// so existing UI string matching and operator muscle memory keep working.
const (
	MsgInvalidCredentials  = "Email ou senha invalidos"
	MsgLoginInternal       = "Erro interno ao realizar login"
	MsgSessionExpired      = "Sessao expirada ou invalida"
	MsgAccessDeniedFmt     = "Acesso negado: requer %s"
	MsgNameRequired        = "Nome de usuario obrigatorio"
	MsgSectorRequired      = "Setor obrigatorio"
	MsgEmailInvalid        = "Email invalido"
	MsgLevelInvalid        = "Nivel de acesso invalido"
	MsgPasswordTooShortFmt = "Senha deve ter ao menos %d caracteres"
	MsgUserAlreadyExists   = "Usuario ja esta cadastrado"
	MsgUserCreated         = "Usuario criado com sucesso"
	MsgCreateInternal      = "Erro interno ao criar usuario"
	MsgCreateMustBeNormal  = "Novo usuario deve ser criado com nivel NORMAL (baixo acesso)"
	MsgAccountCreated      = "Conta criada com sucesso. Seu acesso inicial e NORMAL (baixo)."
	MsgRegisterInternal    = "Erro interno ao criar conta"
	MsgListInternal        = "Erro interno ao buscar usuarios"
	MsgTargetInvalid       = "Usuario alvo invalido"
	MsgUserNotFound        = "Usuario nao encontrado"
	MsgLevelAlreadySet     = "Nivel de acesso ja esta atualizado"
	MsgLastAdmin           = "Deve existir ao menos um administrador no sistema"
	MsgLevelUpdated        = "Nivel de acesso atualizado com sucesso"
	MsgLevelInternal       = "Erro interno ao alterar nivel de acesso"
	MsgEmailTaken          = "Email ja cadastrado"
	MsgNothingToUpdate     = "Nenhum campo para atualizar"
	MsgUserUpdated         = "Usuario atualizado com sucesso"
	MsgUpdateInternal      = "Erro interno ao atualizar usuario"
	MsgNoSelfDelete        = "Nao e permitido remover o proprio usuario logado"
	MsgLastUser            = "Deve existir ao menos um usuario no sistema"
	MsgUserDeleted         = "Usuario deletado com sucesso"
	MsgDeleteInternal      = "Erro interno ao deletar usuario"
)
