// Package testutil provides shared test helpers for setting up content
// directories and key/value stores.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kakeru/folio/internal/kvstore"
)

// TestKV creates a temporary SQLite key/value store that is automatically
// cleaned up.
func TestKV(t *testing.T) *kvstore.Store {
	t.Helper()
	f, err := os.CreateTemp("", "folio-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	kv, err := kvstore.Open(f.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

// TestContentDir creates a temporary content directory populated with a
// small but representative set of posts and projects.
func TestContentDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range fixtureFiles {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

var fixtureFiles = map[string]string{
	"posts/minami373-singer-introduction.yaml": `id: minami373-singer-introduction
title:
  zh: 用盡全力、聲嘶力竭地活著－美波－歌手介紹
  en: Minami - Singer Introduction
  jp: 全力で、声を枯らして生きる - 美波 - 歌手紹介
excerpt:
  zh: 人生短暫，沒有必要為了迎合他人而活
  en: Life is short, there is no need to live for others.
  jp: 人生は短い、他人に合わせて生きる必要なんてない。
content:
  zh: |
    # 美波

    「人生短暫，沒有必要為了迎合他人而活。」

    她的音樂總是充滿自我懷疑與衝突，但從不放棄。
  en: |
    # Minami

    "Life is short, there is no need to live for others."

    Her music is full of self-doubt and conflict, but she never gives up.
  jp: |
    # 美波

    「人生は短い、他人に合わせて生きる必要なんてない。」

    彼女の音楽は自己懐疑と葛藤に満ちているが、決して諦めない。
date: "2025-11-10"
readTime: 6
category:
  zh: 音樂
  en: Music
  jp: 音楽
tags: [音樂, 美波, 日本]
author: Kakeru
`,
	"posts/git-command-notes.yaml": `id: git-command-notes
title:
  zh: Git 筆記
  en: Git Notes
  jp: Git メモ
excerpt:
  zh: 工作與專案中踩過的 Git 地雷整理
  en: Git pitfalls collected from work and side projects.
  jp: 仕事やプロジェクトで踏んだGitの地雷まとめ
content:
  zh: |
    # Git 筆記

    建立新分支：

    - git checkout -b name
    - git push origin name
  en: |
    # Git Notes

    Creating a new branch:

    - git checkout -b name
    - git push origin name
  jp: |
    # Git メモ

    新しいブランチの作成：

    - git checkout -b name
    - git push origin name
date: "2025-12-02"
readTime: 5
category:
  zh: 開發
  en: Development
  jp: 開発
tags: [git, github, 分享, 開發]
author: Kakeru
`,
	"posts/minimalist-web-design.yaml": `id: minimalist-web-design
title:
  zh: 極簡網頁設計
  en: Minimalist Web Design
  jp: ミニマルなウェブデザイン
excerpt:
  zh: 少即是多
  en: Less is more.
  jp: 少ないほど豊かである。
content:
  zh: |
    留白不是空白，而是呼吸的空間。
  en: |
    Whitespace is not emptiness; it is room to breathe.
  jp: |
    余白は空白ではなく、呼吸のための空間である。
date: "2024-11-28"
readTime: 4
category:
  zh: 開發
  en: Development
  jp: 開発
tags: [design, web]
author: Kakeru
`,
	"projects/kxlyrics-japanese-learning-website.yaml": `id: kxlyrics-japanese-learning-website
title:
  zh: KX Lyrics 日語學習網站
  en: KX Lyrics Japanese Learning Website
description:
  zh: 一個用於學習日語的網站，提供日文歌曲學習功能
  en: A website for learning Japanese through songs.
fullDescription:
  zh: |
    # 專案概述

    提供 **日文歌曲學習** 功能，累積 100+ 首歌曲。
  en: |
    ## Project Overview

    Japanese song learning with synced lyrics and 100+ songs.
category:
  zh: 網頁開發
  en: Web Development
year: "2024"
technologies: [React, Node.js, PostgreSQL, Tailwind CSS]
featured: true
liveUrl: https://kxlyrics.com/
`,
	"projects/portfolio-website.yaml": `id: portfolio-website
title:
  zh: 個人作品集網站
  en: Personal Portfolio Website
description:
  zh: 這個網站本身
  en: This very site.
fullDescription:
  zh: |
    多語系的個人網站與部落格。
  en: |
    A localized personal site and blog.
category:
  zh: 網頁開發
  en: Web Development
year: "2025"
technologies: [Go, SQLite]
featured: false
githubUrl: https://github.com/kakeru13468/folio
`,
}
