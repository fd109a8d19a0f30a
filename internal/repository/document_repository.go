package repository

import "context"

// ホスト型バックエンド上のドキュメント（注文・レンタル注文）の読み書きの約束。
// 書き込み系は orderview.Remote も満たす。
type DocumentRepository[T any] interface {
	//種別のドキュメントを全件取得
	FetchAll(ctx context.Context) ([]T, error)

	//ステータスだけ上書き
	PatchStatus(ctx context.Context, id string, status string) error

	//IDでドキュメントを削除（顧客ドキュメントにも使う）
	Delete(ctx context.Context, id string) error
}
