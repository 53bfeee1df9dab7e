package store

import "sync"

// KeyedMutex sérialise les mutations multi-étapes par clé (un checkout par
// utilisateur, une confirmation de paiement par commande). Les stores
// eux-mêmes restent last-write-wins ; c'est ce verrou qui évite les
// mises à jour perdues sur les séquences commande + panier.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

// Lock verrouille la clé et retourne la fonction de déverrouillage.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
